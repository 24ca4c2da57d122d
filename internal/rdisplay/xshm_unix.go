//go:build linux || freebsd || netbsd || openbsd

package rdisplay

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	xshm "github.com/BurntSushi/xgb/shm"
	"github.com/BurntSushi/xgb/xinerama"
	"github.com/BurntSushi/xgb/xproto"
	sysshm "github.com/gen2brain/shm"
	"github.com/rviscarra/snip/internal/frame"
)

func platformBackends() []Backend {
	return []Backend{xshmBackend{}, genericBackend{}}
}

// xshmBackend reads the composed root window through the MIT-SHM extension
// in a single request per frame
type xshmBackend struct{}

func (xshmBackend) Name() string { return "xshm" }

func (xshmBackend) Kind() Kind { return KindAccelerated }

func (xshmBackend) Open(display int) (Source, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("%w: connect to X server: %v", ErrBackendUnavailable, err)
	}
	src := &xshmSource{conn: conn, shmID: -1}
	screen := xproto.Setup(conn).DefaultScreen(conn)
	src.root = xproto.Drawable(screen.Root)

	mon, err := pickMonitor(xMonitors(conn, screen), display)
	if err != nil {
		src.Close()
		return nil, err
	}
	src.mon = mon
	if mon.width == 0 || mon.height == 0 {
		return src, nil
	}

	if err := xshm.Init(conn); err != nil {
		src.Close()
		return nil, fmt.Errorf("%w: MIT-SHM: %v", ErrBackendUnavailable, err)
	}
	size := mon.width * mon.height * frame.PixelWidth
	src.shmID, err = sysshm.Get(sysshm.IPC_PRIVATE, size, sysshm.IPC_CREAT|0600)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("%w: shmget: %v", ErrAcquisitionFailed, err)
	}
	src.data, err = sysshm.At(src.shmID, 0, 0)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("%w: shmat: %v", ErrAcquisitionFailed, err)
	}
	src.seg, err = xshm.NewSegId(conn)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("%w: segment id: %v", ErrAcquisitionFailed, err)
	}
	if err := xshm.AttachChecked(conn, src.seg, uint32(src.shmID), false).Check(); err != nil {
		src.Close()
		return nil, fmt.Errorf("%w: attach segment: %v", ErrAcquisitionFailed, err)
	}
	src.attached = true
	return src, nil
}

// xMonitors lists the xinerama heads, or the whole root window when the
// extension is missing
func xMonitors(conn *xgb.Conn, screen *xproto.ScreenInfo) []monitor {
	whole := []monitor{{width: int(screen.WidthInPixels), height: int(screen.HeightInPixels)}}
	if err := xinerama.Init(conn); err != nil {
		return whole
	}
	reply, err := xinerama.QueryScreens(conn).Reply()
	if err != nil || len(reply.ScreenInfo) == 0 {
		return whole
	}
	monitors := make([]monitor, len(reply.ScreenInfo))
	for i, info := range reply.ScreenInfo {
		monitors[i] = monitor{
			left:   int(info.XOrg),
			top:    int(info.YOrg),
			width:  int(info.Width),
			height: int(info.Height),
		}
	}
	return monitors
}

type xshmSource struct {
	conn     *xgb.Conn
	root     xproto.Drawable
	mon      monitor
	shmID    int
	data     []byte
	seg      xshm.Seg
	attached bool
}

func (s *xshmSource) Frame() (frame.Raw, error) {
	rowLen := s.mon.width * frame.PixelWidth
	if s.mon.width == 0 || s.mon.height == 0 {
		return frame.Raw{Width: s.mon.width, Height: s.mon.height, Stride: rowLen}, nil
	}
	reply, err := xshm.GetImage(s.conn, s.root,
		int16(s.mon.left), int16(s.mon.top),
		uint16(s.mon.width), uint16(s.mon.height),
		0xffffffff, byte(xproto.ImageFormatZPixmap), s.seg, 0).Reply()
	if err != nil {
		return frame.Raw{}, fmt.Errorf("%w: shm GetImage: %v", ErrAcquisitionFailed, err)
	}
	if reply.Depth != 24 && reply.Depth != 32 {
		return frame.Raw{}, fmt.Errorf("%w: unsupported depth %d", ErrAcquisitionFailed, reply.Depth)
	}
	pix := make([]byte, rowLen*s.mon.height)
	copy(pix, s.data)
	return frame.Raw{
		Pix:    pix,
		Width:  s.mon.width,
		Height: s.mon.height,
		Stride: rowLen,
		Order:  frame.OrderBGRX,
	}, nil
}

func (s *xshmSource) Close() error {
	if s.attached {
		xshm.Detach(s.conn, s.seg)
		s.attached = false
	}
	if s.data != nil {
		sysshm.Dt(s.data)
		s.data = nil
	}
	if s.shmID >= 0 {
		sysshm.Rm(s.shmID)
		s.shmID = -1
	}
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	return nil
}
