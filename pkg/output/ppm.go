package output

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

// WritePPM writes img as a binary PPM (P6) file: the header "P6 <w> <h> 255 "
// followed by one byte per channel per pixel in raster order.
func WritePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P6 %d %d 255 ", bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	row := make([]byte, 3*bounds.Dx())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			i := 3 * (x - bounds.Min.X)
			row[i] = uint8(r >> 8)
			row[i+1] = uint8(g >> 8)
			row[i+2] = uint8(b >> 8)
		}
		if _, err := bw.Write(row); err != nil {
			return fmt.Errorf("failed to write PPM pixels: %w", err)
		}
	}

	return bw.Flush()
}
