package orders

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/speps/go-hashids/v2"
)

// NumberGenerator produces short public order references that do not expose
// sequential ids.
type NumberGenerator struct {
	h      *hashids.HashID
	prefix string
}

func NewNumberGenerator(salt, prefix string) (*NumberGenerator, error) {
	hd := hashids.NewData()
	hd.Salt = salt
	hd.MinLength = 8
	hd.Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	h, err := hashids.NewWithData(hd)
	if err != nil {
		return nil, fmt.Errorf("order number generator: %w", err)
	}
	return &NumberGenerator{h: h, prefix: prefix}, nil
}

func (g *NumberGenerator) Generate(buyerID int64) (string, error) {
	nonce := uuid.New()
	n := int64(binary.BigEndian.Uint32(nonce[:4]))

	code, err := g.h.EncodeInt64([]int64{buyerID, n})
	if err != nil {
		return "", fmt.Errorf("encode order number: %w", err)
	}
	return fmt.Sprintf("%s-%s", g.prefix, strings.ToUpper(code)), nil
}
