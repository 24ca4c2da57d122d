package encoders

import (
	"fmt"
	"sort"
	"strings"
)

type encoderFactory = func(opts Options) (Encoder, error)

// Index of supported formats, each encoder registers itself
var registeredEncoders = make(map[ImageFormat]encoderFactory, 4)

var aliases = map[string]ImageFormat{
	"jpg": JPEGFormat,
	"tif": TIFFFormat,
}

//EncoderService creates instances of encoders
type EncoderService struct {
}

//NewEncoderService creates an encoder factory
func NewEncoderService() Service {
	return &EncoderService{}
}

//NewEncoder creates an instance of an encoder of the selected format
func (*EncoderService) NewEncoder(format ImageFormat, opts Options) (Encoder, error) {
	factory, found := registeredEncoders[Canonical(format)]
	if !found {
		return nil, fmt.Errorf("format %q not supported", format)
	}
	return factory(opts)
}

//Supports returns a boolean indicating if the format is supported
func (*EncoderService) Supports(format ImageFormat) bool {
	_, found := registeredEncoders[Canonical(format)]
	return found
}

// Canonical lower-cases a format name and resolves aliases such as "jpg"
func Canonical(format string) ImageFormat {
	f := strings.ToLower(strings.TrimSpace(format))
	if alias, ok := aliases[f]; ok {
		return alias
	}
	return f
}

// Formats lists the registered formats in sorted order
func Formats() []ImageFormat {
	formats := make([]ImageFormat, 0, len(registeredEncoders))
	for f := range registeredEncoders {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}
