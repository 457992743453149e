//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package main

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/golang/glog"
	"golang.org/x/crypto/ssh/terminal"
	"golang.org/x/sys/unix"
)

// TermSize is the terminal size in cells and, when the terminal reports it,
// in pixels.
type TermSize struct {
	WSRow, WSCol       uint
	WSXPixel, WSYPixel uint
}

var kittyWindowReply = regexp.MustCompile(`\[4;(\d+);(\d+)t`)

func GetTermSize() (TermSize, error) {
	f, err := os.OpenFile("/dev/tty", unix.O_NOCTTY|unix.O_CLOEXEC|unix.O_NDELAY|unix.O_RDWR, 0666)
	if err == nil {
		// https://sw.kovidgoyal.net/kitty/graphics-protocol/#getting-the-window-size
		defer f.Close()
		sz, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
		if err == nil {
			ts := TermSize{WSRow: uint(sz.Row), WSCol: uint(sz.Col), WSXPixel: uint(sz.Xpixel), WSYPixel: uint(sz.Ypixel)}
			if ts.WSXPixel == 0 && ts.WSYPixel == 0 && os.Getenv("TERM") == "xterm-kitty" {
				if w, h, err := kittyPixelSize(int(f.Fd())); err == nil {
					ts.WSXPixel, ts.WSYPixel = w, h
				} else {
					glog.V(1).Infof("asking kitty for the window size: %v", err)
				}
			}
			return ts, nil
		}
	}

	w, h, err := terminal.GetSize(int(os.Stdin.Fd()))
	if err != nil {
		return TermSize{}, err
	}
	return TermSize{WSRow: uint(h), WSCol: uint(w)}, nil
}

// kittyPixelSize asks the terminal for its size in pixels with CSI 14 t,
// and parses the reply: ESC [4;<height>;<width>t.
func kittyPixelSize(fd int) (w, h uint, err error) {
	state, err := terminal.MakeRaw(fd)
	if err != nil {
		return 0, 0, err
	}
	defer terminal.Restore(fd, state)

	fmt.Printf("\033[14t")
	// There is no timeout; a terminal which does not reply blocks here.
	s, err := bufio.NewReader(os.Stdin).ReadString('t')
	if err != nil {
		return 0, 0, err
	}
	m := kittyWindowReply.FindStringSubmatch(s)
	if len(m) != 3 {
		return 0, 0, fmt.Errorf("unexpected reply %q", s)
	}
	height, errH := strconv.Atoi(m[1])
	width, errW := strconv.Atoi(m[2])
	if errH != nil || errW != nil {
		return 0, 0, fmt.Errorf("unexpected reply %q", s)
	}
	return uint(width), uint(height), nil
}
