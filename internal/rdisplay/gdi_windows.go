//go:build windows

package rdisplay

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"github.com/rviscarra/snip/internal/frame"
	"golang.org/x/sys/windows"
)

const (
	captureBlt             = 0x40000000
	perMonitorDpiAwareness = 2
)

var (
	user32                     = windows.NewLazySystemDLL("user32.dll")
	shcore                     = windows.NewLazySystemDLL("shcore.dll")
	procEnumDisplayMonitors    = user32.NewProc("EnumDisplayMonitors")
	procSetProcessDpiAwareness = shcore.NewProc("SetProcessDpiAwareness")

	dpiAwareOnce sync.Once
)

// makeDPIAware asks for physical pixel coordinates. It can only be set
// once per process, later calls are no-ops.
func makeDPIAware() {
	dpiAwareOnce.Do(func() {
		if procSetProcessDpiAwareness.Find() == nil {
			procSetProcessDpiAwareness.Call(perMonitorDpiAwareness)
		}
	})
}

// enumMonitorsCallback is shared by every enumeration, the runtime never
// frees callback slots
var enumMonitorsCallback = windows.NewCallback(enumMonitorProc)

func enumMonitorProc(hMonitor, hdc uintptr, rect *win.RECT, lparam uintptr) uintptr {
	monitors := (*[]monitor)(unsafe.Pointer(lparam))
	*monitors = append(*monitors, monitor{
		left:   int(rect.Left),
		top:    int(rect.Top),
		width:  int(rect.Right - rect.Left),
		height: int(rect.Bottom - rect.Top),
	})
	return 1
}

func enumerateMonitors() []monitor {
	var monitors []monitor
	procEnumDisplayMonitors.Call(0, 0, enumMonitorsCallback, uintptr(unsafe.Pointer(&monitors)))
	return monitors
}

// gdiBackend blits the screen into a compatible bitmap and reads the
// bits back as a bottom-up DIB
type gdiBackend struct{}

func (gdiBackend) Name() string { return "gdi" }

func (gdiBackend) Kind() Kind { return KindLegacy }

func (gdiBackend) Open(display int) (Source, error) {
	makeDPIAware()
	mon, err := pickMonitor(enumerateMonitors(), display)
	if err != nil {
		return nil, err
	}
	return &gdiSource{mon: mon}, nil
}

type gdiSource struct {
	mon monitor
}

func (s *gdiSource) Frame() (frame.Raw, error) {
	width, height := s.mon.width, s.mon.height
	rowLen := width * frame.PixelWidth
	if width == 0 || height == 0 {
		return frame.Raw{Width: width, Height: height, Stride: rowLen}, nil
	}

	screenDC := win.GetDC(0)
	if screenDC == 0 {
		return frame.Raw{}, fmt.Errorf("%w: GetDC", ErrBackendUnavailable)
	}
	defer win.ReleaseDC(0, screenDC)

	memDC := win.CreateCompatibleDC(screenDC)
	if memDC == 0 {
		return frame.Raw{}, fmt.Errorf("%w: CreateCompatibleDC", ErrAcquisitionFailed)
	}
	defer win.DeleteDC(memDC)

	bitmap := win.CreateCompatibleBitmap(screenDC, int32(width), int32(height))
	if bitmap == 0 {
		return frame.Raw{}, fmt.Errorf("%w: CreateCompatibleBitmap", ErrAcquisitionFailed)
	}
	defer win.DeleteObject(win.HGDIOBJ(bitmap))

	old := win.SelectObject(memDC, win.HGDIOBJ(bitmap))
	if old == 0 || old == 0xffffffff {
		return frame.Raw{}, fmt.Errorf("%w: SelectObject", ErrAcquisitionFailed)
	}
	defer win.SelectObject(memDC, old)

	if !win.BitBlt(memDC, 0, 0, int32(width), int32(height),
		screenDC, int32(s.mon.left), int32(s.mon.top), win.SRCCOPY|captureBlt) {
		return frame.Raw{}, fmt.Errorf("%w: BitBlt", ErrAcquisitionFailed)
	}

	bmi := win.BITMAPINFO{
		BmiHeader: win.BITMAPINFOHEADER{
			BiSize:        uint32(unsafe.Sizeof(win.BITMAPINFOHEADER{})),
			BiWidth:       int32(width),
			BiHeight:      int32(height),
			BiPlanes:      1,
			BiBitCount:    8 * frame.PixelWidth,
			BiCompression: win.BI_RGB,
			BiSizeImage:   uint32(rowLen * height),
		},
	}
	pix := make([]byte, rowLen*height)
	lines := win.GetDIBits(memDC, bitmap, 0, uint32(height), &pix[0], &bmi, win.DIB_RGB_COLORS)
	if lines != int32(height) {
		return frame.Raw{}, fmt.Errorf("%w: GetDIBits copied %d of %d lines", ErrAcquisitionFailed, lines, height)
	}
	return frame.Raw{
		Pix:      pix,
		Width:    width,
		Height:   height,
		Stride:   rowLen,
		Order:    frame.OrderBGRX,
		BottomUp: true,
	}, nil
}

func (s *gdiSource) Close() error {
	return nil
}
