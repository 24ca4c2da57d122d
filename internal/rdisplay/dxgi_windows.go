//go:build windows

package rdisplay

/*
#cgo LDFLAGS: -ld3d11 -ldxgi
#include <stdint.h>
#include <stdlib.h>
#include <string.h>
#include <windows.h>
#include <initguid.h>
#include <d3d11.h>
#include <dxgi1_2.h>

enum {
	SNIP_OK = 0,
	SNIP_WOULD_BLOCK = 1,
	SNIP_FAILED = 2,
	SNIP_NOT_FOUND = 3,
};

typedef struct {
	ID3D11Device*           device;
	ID3D11DeviceContext*    context;
	IDXGIOutputDuplication* duplication;
	ID3D11Texture2D*        staging;
	int                     width;
	int                     height;
} snip_dxgi;

void snip_dxgi_close(snip_dxgi* m) {
	if (!m) return;
	if (m->staging) m->staging->lpVtbl->Release(m->staging);
	if (m->duplication) m->duplication->lpVtbl->Release(m->duplication);
	if (m->context) m->context->lpVtbl->Release(m->context);
	if (m->device) m->device->lpVtbl->Release(m->device);
	free(m);
}

int snip_dxgi_open(int index, snip_dxgi** out) {
	HRESULT hr;
	*out = NULL;
	snip_dxgi* m = (snip_dxgi*)calloc(1, sizeof(snip_dxgi));
	if (!m) return SNIP_FAILED;

	D3D_FEATURE_LEVEL levels[] = {
		D3D_FEATURE_LEVEL_11_0,
		D3D_FEATURE_LEVEL_10_1,
		D3D_FEATURE_LEVEL_9_1
	};
	D3D_FEATURE_LEVEL level;
	hr = D3D11CreateDevice(NULL, D3D_DRIVER_TYPE_HARDWARE, NULL, 0,
	                       levels, 3, D3D11_SDK_VERSION,
	                       &m->device, &level, &m->context);
	if (FAILED(hr)) { snip_dxgi_close(m); return SNIP_FAILED; }

	IDXGIDevice* dxgiDevice = NULL;
	hr = m->device->lpVtbl->QueryInterface(m->device, &IID_IDXGIDevice, (void**)&dxgiDevice);
	if (FAILED(hr)) { snip_dxgi_close(m); return SNIP_FAILED; }

	IDXGIAdapter* adapter = NULL;
	hr = dxgiDevice->lpVtbl->GetParent(dxgiDevice, &IID_IDXGIAdapter, (void**)&adapter);
	dxgiDevice->lpVtbl->Release(dxgiDevice);
	if (FAILED(hr)) { snip_dxgi_close(m); return SNIP_FAILED; }

	IDXGIOutput* output = NULL;
	hr = adapter->lpVtbl->EnumOutputs(adapter, (UINT)index, &output);
	adapter->lpVtbl->Release(adapter);
	if (hr == DXGI_ERROR_NOT_FOUND) { snip_dxgi_close(m); return SNIP_NOT_FOUND; }
	if (FAILED(hr)) { snip_dxgi_close(m); return SNIP_FAILED; }

	IDXGIOutput1* output1 = NULL;
	hr = output->lpVtbl->QueryInterface(output, &IID_IDXGIOutput1, (void**)&output1);
	output->lpVtbl->Release(output);
	if (FAILED(hr)) { snip_dxgi_close(m); return SNIP_FAILED; }

	hr = output1->lpVtbl->DuplicateOutput(output1, (IUnknown*)m->device, &m->duplication);
	output1->lpVtbl->Release(output1);
	if (FAILED(hr)) { snip_dxgi_close(m); return SNIP_FAILED; }

	DXGI_OUTDUPL_DESC desc;
	m->duplication->lpVtbl->GetDesc(m->duplication, &desc);
	m->width = desc.ModeDesc.Width;
	m->height = desc.ModeDesc.Height;
	*out = m;
	return SNIP_OK;
}

int snip_dxgi_frame(snip_dxgi* m, uint8_t* dst, int dstSize) {
	HRESULT hr;
	IDXGIResource* res = NULL;
	DXGI_OUTDUPL_FRAME_INFO info;

	hr = m->duplication->lpVtbl->AcquireNextFrame(m->duplication, 0, &info, &res);
	if (hr == DXGI_ERROR_WAIT_TIMEOUT) return SNIP_WOULD_BLOCK;
	if (FAILED(hr)) return SNIP_FAILED;

	ID3D11Texture2D* tex = NULL;
	hr = res->lpVtbl->QueryInterface(res, &IID_ID3D11Texture2D, (void**)&tex);
	res->lpVtbl->Release(res);
	if (FAILED(hr)) {
		m->duplication->lpVtbl->ReleaseFrame(m->duplication);
		return SNIP_FAILED;
	}

	if (m->staging == NULL) {
		D3D11_TEXTURE2D_DESC desc;
		tex->lpVtbl->GetDesc(tex, &desc);
		desc.Usage = D3D11_USAGE_STAGING;
		desc.CPUAccessFlags = D3D11_CPU_ACCESS_READ;
		desc.BindFlags = 0;
		desc.MiscFlags = 0;
		desc.MipLevels = 1;
		desc.ArraySize = 1;
		desc.SampleDesc.Count = 1;
		hr = m->device->lpVtbl->CreateTexture2D(m->device, &desc, NULL, &m->staging);
		if (FAILED(hr)) {
			tex->lpVtbl->Release(tex);
			m->duplication->lpVtbl->ReleaseFrame(m->duplication);
			return SNIP_FAILED;
		}
	}

	m->context->lpVtbl->CopyResource(m->context, (ID3D11Resource*)m->staging, (ID3D11Resource*)tex);
	tex->lpVtbl->Release(tex);

	D3D11_MAPPED_SUBRESOURCE mapped;
	hr = m->context->lpVtbl->Map(m->context, (ID3D11Resource*)m->staging, 0, D3D11_MAP_READ, 0, &mapped);
	if (FAILED(hr)) {
		m->duplication->lpVtbl->ReleaseFrame(m->duplication);
		return SNIP_FAILED;
	}
	int rowLen = m->width * 4;
	if (rowLen * m->height > dstSize) {
		m->context->lpVtbl->Unmap(m->context, (ID3D11Resource*)m->staging, 0);
		m->duplication->lpVtbl->ReleaseFrame(m->duplication);
		return SNIP_FAILED;
	}
	uint8_t* src = (uint8_t*)mapped.pData;
	for (int y = 0; y < m->height; y++) {
		memcpy(dst + y * rowLen, src + y * mapped.RowPitch, rowLen);
	}
	m->context->lpVtbl->Unmap(m->context, (ID3D11Resource*)m->staging, 0);
	m->duplication->lpVtbl->ReleaseFrame(m->duplication);
	return SNIP_OK;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/rviscarra/snip/internal/frame"
)

func platformBackends() []Backend {
	return []Backend{dxgiBackend{}, gdiBackend{}, genericBackend{}}
}

// dxgiBackend uses desktop duplication. Frames arrive only when the
// desktop changes, so acquisition is polled.
type dxgiBackend struct{}

func (dxgiBackend) Name() string { return "dxgi" }

func (dxgiBackend) Kind() Kind { return KindGeneric }

func (dxgiBackend) Open(display int) (Source, error) {
	if display < 0 {
		return nil, displayNotFound(display, 0)
	}
	var m *C.snip_dxgi
	switch C.snip_dxgi_open(C.int(display), &m) {
	case C.SNIP_OK:
	case C.SNIP_NOT_FOUND:
		return nil, fmt.Errorf("%w: dxgi output %d", ErrDisplayNotFound, display)
	default:
		return nil, fmt.Errorf("%w: desktop duplication", ErrBackendUnavailable)
	}
	return &dxgiSource{m: m, width: int(m.width), height: int(m.height)}, nil
}

type dxgiSource struct {
	m      *C.snip_dxgi
	width  int
	height int
}

func (s *dxgiSource) Frame() (frame.Raw, error) {
	rowLen := s.width * frame.PixelWidth
	pix := make([]byte, rowLen*s.height)
	if len(pix) == 0 {
		return frame.Raw{Width: s.width, Height: s.height, Stride: rowLen}, nil
	}
	switch C.snip_dxgi_frame(s.m, (*C.uint8_t)(unsafe.Pointer(&pix[0])), C.int(len(pix))) {
	case C.SNIP_OK:
	case C.SNIP_WOULD_BLOCK:
		return frame.Raw{}, ErrWouldBlock
	default:
		return frame.Raw{}, fmt.Errorf("%w: acquire next frame", ErrAcquisitionFailed)
	}
	return frame.Raw{
		Pix:    pix,
		Width:  s.width,
		Height: s.height,
		Stride: rowLen,
		Order:  frame.OrderBGRX,
	}, nil
}

func (s *dxgiSource) Close() error {
	if s.m != nil {
		C.snip_dxgi_close(s.m)
		s.m = nil
	}
	return nil
}
