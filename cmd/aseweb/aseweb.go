// Command aseweb serves the sprite files below a directory for inspection
// in a browser.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"badc0de.net/pkg/go-aseprite/ase"
	"badc0de.net/pkg/go-aseprite/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for aseweb")
	root          = flag.String("root", ".", "directory holding the sprite files to serve")
	cacheSize     = flag.Int("cache_size", 64, "how many decoded documents to keep in memory")
	strict        = flag.Bool("strict", false, "whether to reject malformed layer trees and layers outside the first frame")
)

func main() {
	flagutil.Parse()

	h, err := web.NewHandler(*root, *cacheSize, ase.Options{Strict: *strict})
	if err != nil {
		glog.Exit(err)
	}

	r := mux.NewRouter()
	h.RegisterRoutes(r)

	glog.Infof("serving %s on %s", *root, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.LoggingHandler(os.Stderr, r)))
}
