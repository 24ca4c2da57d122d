package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBGRXForcesAlpha(t *testing.T) {
	raw := Raw{
		Pix:    []byte{10, 20, 30, 40, 1, 2, 3, 4},
		Width:  2,
		Height: 1,
		Stride: 8,
		Order:  OrderBGRX,
	}
	n, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{10, 20, 30, 255, 1, 2, 3, 255}, n.Pix)
	assert.Equal(t, 8, n.RowLen)
	assert.Equal(t, PixelWidth, n.PixelWidth)
}

func TestNormalizeBottomUpRGBX(t *testing.T) {
	// Two rows, one pixel each, stored last row first in R,G,B,X order.
	raw := Raw{
		Pix:      []byte{1, 2, 3, 0, 4, 5, 6, 0},
		Width:    1,
		Height:   2,
		Stride:   4,
		Order:    OrderRGBX,
		BottomUp: true,
	}
	n, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{6, 5, 4, 255, 3, 2, 1, 255}, n.Pix)
}

func TestNormalizeBottomUpBGRXKeepsChannels(t *testing.T) {
	raw := Raw{
		Pix:      []byte{1, 2, 3, 0, 4, 5, 6, 0},
		Width:    1,
		Height:   2,
		Stride:   4,
		Order:    OrderBGRX,
		BottomUp: true,
	}
	n, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{4, 5, 6, 255, 1, 2, 3, 255}, n.Pix)
}

func TestNormalizeDropsStridePadding(t *testing.T) {
	raw := Raw{
		Pix: []byte{
			1, 1, 1, 1, 9, 9,
			2, 2, 2, 2, 9, 9,
			3, 3, 3, 3,
		},
		Width:  1,
		Height: 3,
		Stride: 6,
		Order:  OrderBGRX,
	}
	n, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 1, 255, 2, 2, 2, 255, 3, 3, 3, 255}, n.Pix)
	assert.Len(t, n.Pix, n.Height*n.RowLen)
}

func TestNormalizeGeometry(t *testing.T) {
	for _, size := range []struct{ w, h int }{{1, 1}, {3, 2}, {7, 5}, {16, 9}} {
		raw := Raw{
			Pix:    make([]byte, size.w*size.h*PixelWidth),
			Width:  size.w,
			Height: size.h,
			Stride: size.w * PixelWidth,
			Order:  OrderRGBX,
		}
		n, err := Normalize(raw)
		require.NoError(t, err)
		assert.Equal(t, size.w*PixelWidth, n.RowLen)
		assert.Equal(t, size.w*size.h, len(n.Pix)/n.PixelWidth)
	}
}

func TestNormalizeDoesNotAlias(t *testing.T) {
	raw := Raw{Pix: []byte{1, 2, 3, 4}, Width: 1, Height: 1, Stride: 4}
	n, err := Normalize(raw)
	require.NoError(t, err)
	n.Pix[0] = 99
	assert.Equal(t, byte(1), raw.Pix[0])
}

func TestNormalizeEmpty(t *testing.T) {
	for _, raw := range []Raw{
		{Width: 0, Height: 10},
		{Width: 10, Height: 0},
		{},
	} {
		n, err := Normalize(raw)
		require.NoError(t, err)
		assert.Empty(t, n.Pix)
		assert.Equal(t, raw.Width*PixelWidth, n.RowLen)
	}
}

func TestNormalizeMalformed(t *testing.T) {
	cases := map[string]Raw{
		"negative":    {Width: -1, Height: 1},
		"short":       {Pix: make([]byte, 7), Width: 2, Height: 1, Stride: 8},
		"stride":      {Pix: make([]byte, 16), Width: 2, Height: 2, Stride: 4},
		"bad order":   {Pix: make([]byte, 4), Width: 1, Height: 1, Stride: 4, Order: ChannelOrder(7)},
		"short multi": {Pix: make([]byte, 12), Width: 1, Height: 3, Stride: 8},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
