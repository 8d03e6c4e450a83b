package lsb

import (
	"fmt"
	"image"
	"image/color"
)

// ChannelBits is the width of one channel value.
const ChannelBits = 8

// Container is a decoded raster: Height rows of Width pixels, each pixel
// holding Channels consecutive 8-bit values in Pix. Every value in Pix is an
// addressable unit.
//
// Alpha optionally carries a per-pixel alpha plane that is preserved but
// never written, used when the alpha channel is not part of Pix.
type Container struct {
	Width, Height int
	Channels      int
	Pix           []uint8
	Alpha         []uint8
}

// NewContainer allocates a zeroed container.
func NewContainer(width, height, channels int) Container {
	return Container{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

func (c Container) Validate() error {
	if c.Width < 0 || c.Height < 0 || c.Channels < 1 {
		return fmt.Errorf("%w: %dx%d with %d channels", ErrInvalidContainer, c.Width, c.Height, c.Channels)
	}
	if len(c.Pix) != c.Width*c.Height*c.Channels {
		return fmt.Errorf("%w: pixel buffer has %d values, want %d",
			ErrInvalidContainer, len(c.Pix), c.Width*c.Height*c.Channels)
	}
	if c.Alpha != nil && len(c.Alpha) != c.Width*c.Height {
		return fmt.Errorf("%w: alpha plane has %d values, want %d",
			ErrInvalidContainer, len(c.Alpha), c.Width*c.Height)
	}
	return nil
}

// Units returns the number of addressable channel values.
func (c Container) Units() int {
	return c.Width * c.Height * c.Channels
}

// Capacity returns the number of stream bits the container holds at lsbs
// bits per unit.
func (c Container) Capacity(lsbs int) uint64 {
	return uint64(c.Units()) * uint64(lsbs)
}

// Copy returns a deep copy so that embedding never touches the caller's
// buffer.
func (c Container) Copy() Container {
	pix := make([]uint8, len(c.Pix))
	_ = copy(pix, c.Pix)
	c.Pix = pix
	if c.Alpha != nil {
		alpha := make([]uint8, len(c.Alpha))
		_ = copy(alpha, c.Alpha)
		c.Alpha = alpha
	}
	return c
}

// FromImage converts src to a non-premultiplied container. With withAlpha
// the alpha channel is the fourth addressable channel; otherwise only RGB is
// addressable and alpha is kept aside.
func FromImage(src image.Image, withAlpha bool) Container {
	bounds := src.Bounds()
	channels := 3
	if withAlpha {
		channels = 4
	}
	c := NewContainer(bounds.Dx(), bounds.Dy(), channels)
	if !withAlpha {
		c.Alpha = make([]uint8, c.Width*c.Height)
	}

	idx := 0
	for y := range c.Height {
		for x := range c.Width {
			px := color.NRGBAModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			p := c.Pix[idx*channels : (idx+1)*channels : (idx+1)*channels]
			p[0], p[1], p[2] = px.R, px.G, px.B
			if withAlpha {
				p[3] = px.A
			} else {
				c.Alpha[idx] = px.A
			}
			idx++
		}
	}
	return c
}

// Image rebuilds an image from a container produced by FromImage or with
// 1, 3 or 4 channels.
func (c Container) Image() (image.Image, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rect := image.Rect(0, 0, c.Width, c.Height)
	if c.Channels == 1 {
		gray := image.NewGray(rect)
		_ = copy(gray.Pix, c.Pix)
		return gray, nil
	}
	if c.Channels != 3 && c.Channels != 4 {
		return nil, fmt.Errorf("%w: cannot build an image from %d channels", ErrInvalidContainer, c.Channels)
	}

	dist := image.NewNRGBA(rect)
	for i := range c.Width * c.Height {
		p := c.Pix[i*c.Channels : (i+1)*c.Channels]
		q := dist.Pix[i*4 : i*4+4 : i*4+4]
		q[0], q[1], q[2], q[3] = p[0], p[1], p[2], 0xff
		switch {
		case c.Channels == 4:
			q[3] = p[3]
		case c.Alpha != nil:
			q[3] = c.Alpha[i]
		}
	}
	return dist, nil
}
