//go:build darwin

package rdisplay

/*
#cgo LDFLAGS: -framework CoreGraphics -framework CoreFoundation
#include <CoreGraphics/CoreGraphics.h>
#include <dlfcn.h>
#include <stdlib.h>

typedef struct {
	void*  data;
	size_t size;
	int    width;
	int    height;
	size_t bytesPerRow;
	int    status;
} snip_cg_frame;

enum {
	SNIP_CG_OK = 0,
	SNIP_CG_UNAVAILABLE = 1,
	SNIP_CG_FAILED = 2,
};

// CGWindowListCreateImage is hidden from recent SDK headers but still
// exported by the CoreGraphics dylib.
typedef CGImageRef (*snip_list_image_fn)(CGRect, uint32_t, uint32_t, uint32_t);

static snip_list_image_fn snip_list_image(void) {
	static snip_list_image_fn fn = NULL;
	if (!fn) {
		fn = (snip_list_image_fn)dlsym(RTLD_DEFAULT, "CGWindowListCreateImage");
	}
	return fn;
}

int snip_cg_displays(CGDirectDisplayID* ids, uint32_t max) {
	uint32_t count = 0;
	if (CGGetActiveDisplayList(max, ids, &count) != kCGErrorSuccess) {
		return -1;
	}
	return (int)count;
}

snip_cg_frame snip_cg_capture(CGDirectDisplayID display) {
	snip_cg_frame result = {0};
	snip_list_image_fn fn = snip_list_image();
	if (!fn) {
		result.status = SNIP_CG_UNAVAILABLE;
		return result;
	}

	CGRect bounds = CGDisplayBounds(display);
	// kCGWindowListOptionOnScreenOnly, kCGNullWindowID, kCGWindowImageDefault
	CGImageRef image = fn(bounds, 1, 0, 0);
	if (!image) {
		result.status = SNIP_CG_FAILED;
		return result;
	}

	result.width = (int)CGImageGetWidth(image);
	result.height = (int)CGImageGetHeight(image);
	result.bytesPerRow = (size_t)result.width * 4;
	result.size = result.bytesPerRow * (size_t)result.height;
	if (result.size == 0) {
		CGImageRelease(image);
		return result;
	}
	result.data = malloc(result.size);
	if (!result.data) {
		CGImageRelease(image);
		result.status = SNIP_CG_FAILED;
		return result;
	}

	CGColorSpaceRef cs = CGColorSpaceCreateDeviceRGB();
	CGContextRef ctx = CGBitmapContextCreate(result.data, result.width, result.height,
		8, result.bytesPerRow, cs, kCGImageAlphaNoneSkipLast);
	CGColorSpaceRelease(cs);
	if (!ctx) {
		free(result.data);
		result.data = NULL;
		CGImageRelease(image);
		result.status = SNIP_CG_FAILED;
		return result;
	}
	CGContextDrawImage(ctx, CGRectMake(0, 0, result.width, result.height), image);
	CGContextRelease(ctx);
	CGImageRelease(image);
	return result;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/rviscarra/snip/internal/frame"
)

const maxDisplays = 16

func platformBackends() []Backend {
	return []Backend{coreGraphicsBackend{}, genericBackend{}}
}

// coreGraphicsBackend copies the window server's composed image of a
// display in one call
type coreGraphicsBackend struct{}

func (coreGraphicsBackend) Name() string { return "coregraphics" }

func (coreGraphicsBackend) Kind() Kind { return KindAccelerated }

func (coreGraphicsBackend) Open(display int) (Source, error) {
	var ids [maxDisplays]C.CGDirectDisplayID
	count := int(C.snip_cg_displays(&ids[0], maxDisplays))
	if count < 0 {
		return nil, fmt.Errorf("%w: CGGetActiveDisplayList", ErrBackendUnavailable)
	}
	if display < 0 || display >= count {
		return nil, displayNotFound(display, count)
	}
	return &coreGraphicsSource{id: ids[display]}, nil
}

type coreGraphicsSource struct {
	id C.CGDirectDisplayID
}

func (s *coreGraphicsSource) Frame() (frame.Raw, error) {
	fd := C.snip_cg_capture(s.id)
	switch fd.status {
	case C.SNIP_CG_OK:
	case C.SNIP_CG_UNAVAILABLE:
		return frame.Raw{}, fmt.Errorf("%w: CGWindowListCreateImage missing", ErrBackendUnavailable)
	default:
		return frame.Raw{}, fmt.Errorf("%w: CGWindowListCreateImage", ErrAcquisitionFailed)
	}
	width, height := int(fd.width), int(fd.height)
	stride := int(fd.bytesPerRow)
	if fd.data == nil {
		return frame.Raw{Width: width, Height: height, Stride: stride, Order: frame.OrderRGBX}, nil
	}
	defer C.free(fd.data)

	pix := make([]byte, int(fd.size))
	copy(pix, unsafe.Slice((*byte)(fd.data), int(fd.size)))
	return frame.Raw{
		Pix:    pix,
		Width:  width,
		Height: height,
		Stride: stride,
		Order:  frame.OrderRGBX,
	}, nil
}

func (s *coreGraphicsSource) Close() error {
	return nil
}
