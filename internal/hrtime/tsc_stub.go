//go:build !amd64

package hrtime

const supported = false

func now() uint64 { return 0 }

func calibrate() (Counter, error) {
	return Counter{}, ErrUnsupported
}
