package epidemic

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

//NewSeed generates the non-zero random seed using crypto/rand
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, fmt.Errorf("read random seed: %w", err)
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}
