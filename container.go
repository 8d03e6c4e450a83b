package steg

import (
	"image"

	"github.com/yyyoichi/lsb_zero/internal/lsb"
)

// Container is a decoded pixel buffer: Height rows of Width pixels with
// Channels 8-bit values each, stored row-major in Pix.
type Container = lsb.Container

// NewContainer allocates a zeroed container.
func NewContainer(width, height, channels int) Container {
	return lsb.NewContainer(width, height, channels)
}

// FromImage converts an image to a container holding RGB, or RGBA when
// withAlpha is set. Container.Image converts back.
func FromImage(src image.Image, withAlpha bool) Container {
	return lsb.FromImage(src, withAlpha)
}
