package types

import (
	"encoding/binary"
	"fmt"

	"cosmossdk.io/math"
)

// MaxAssetLength bounds asset identifiers stored in pool keys.
const MaxAssetLength = 128

// Pool is a liquidity pool for one ordered asset pair.
//
// The pair is NOT order-normalized: (AssetA, AssetB) and (AssetB, AssetA)
// address two independent pools with independently drifting prices.
// Callers that want the reverse direction must use the reverse pool.
type Pool struct {
	Id          uint64   `json:"id"`
	AssetA      string   `json:"asset_a"`
	AssetB      string   `json:"asset_b"`
	ReserveA    math.Int `json:"reserve_a"`
	ReserveB    math.Int `json:"reserve_b"`
	TotalShares math.Int `json:"total_shares"`
}

// NewPool creates a pool record for an ordered asset pair.
func NewPool(id uint64, assetA, assetB string, reserveA, reserveB, totalShares math.Int) *Pool {
	return &Pool{
		Id:          id,
		AssetA:      assetA,
		AssetB:      assetB,
		ReserveA:    reserveA,
		ReserveB:    reserveB,
		TotalShares: totalShares,
	}
}

// Validate checks structural well-formedness of a pool record.
// Reserves may be zero: a pool drained by exhaustive withdrawal stays
// addressable forever.
func (p Pool) Validate() error {
	if p.AssetA == "" || p.AssetB == "" {
		return ErrInvalidInput.Wrap("asset identifiers cannot be empty")
	}
	if len(p.AssetA) > MaxAssetLength || len(p.AssetB) > MaxAssetLength {
		return ErrInvalidInput.Wrapf("asset identifier exceeds %d bytes", MaxAssetLength)
	}
	if p.AssetA == p.AssetB {
		return ErrIdenticalAssets.Wrapf("pool %d has identical assets %s", p.Id, p.AssetA)
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidInput.Wrapf("pool %d has nil amounts", p.Id)
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidInput.Wrapf("pool %d has negative reserves", p.Id)
	}
	if p.TotalShares.IsNegative() {
		return ErrInvalidInput.Wrapf("pool %d has negative total shares", p.Id)
	}
	return nil
}

// Marshal encodes the pool as a length-prefixed binary record.
// Layout: id(8) | lenA(2) assetA | lenB(2) assetB | three Int fields,
// each as len(2) plus math.Int's own encoding.
func (p *Pool) Marshal() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	bufs := make([][]byte, 0, 5)
	bufs = append(bufs, []byte(p.AssetA), []byte(p.AssetB))
	for _, v := range []math.Int{p.ReserveA, p.ReserveB, p.TotalShares} {
		bz, err := v.Marshal()
		if err != nil {
			return nil, fmt.Errorf("marshal pool %d: %w", p.Id, err)
		}
		bufs = append(bufs, bz)
	}

	size := 8
	for _, b := range bufs {
		size += 2 + len(b)
	}

	out := make([]byte, 0, size)
	idBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(idBytes, p.Id)
	out = append(out, idBytes...)
	for _, b := range bufs {
		if len(b) > 0xFFFF {
			return nil, fmt.Errorf("marshal pool %d: field too long", p.Id)
		}
		lenBytes := make([]byte, 2)
		binary.BigEndian.PutUint16(lenBytes, uint16(len(b)))
		out = append(out, lenBytes...)
		out = append(out, b...)
	}
	return out, nil
}

// Unmarshal decodes a pool record written by Marshal.
func (p *Pool) Unmarshal(bz []byte) error {
	if len(bz) < 8 {
		return fmt.Errorf("unmarshal pool: truncated record (%d bytes)", len(bz))
	}
	p.Id = binary.BigEndian.Uint64(bz[:8])
	rest := bz[8:]

	next := func() ([]byte, error) {
		if len(rest) < 2 {
			return nil, fmt.Errorf("unmarshal pool %d: truncated field length", p.Id)
		}
		n := int(binary.BigEndian.Uint16(rest[:2]))
		rest = rest[2:]
		if len(rest) < n {
			return nil, fmt.Errorf("unmarshal pool %d: truncated field body", p.Id)
		}
		field := rest[:n]
		rest = rest[n:]
		return field, nil
	}

	assetA, err := next()
	if err != nil {
		return err
	}
	assetB, err := next()
	if err != nil {
		return err
	}
	p.AssetA = string(assetA)
	p.AssetB = string(assetB)

	for _, dst := range []*math.Int{&p.ReserveA, &p.ReserveB, &p.TotalShares} {
		field, err := next()
		if err != nil {
			return err
		}
		if err := dst.Unmarshal(field); err != nil {
			return fmt.Errorf("unmarshal pool %d: %w", p.Id, err)
		}
	}
	if len(rest) != 0 {
		return fmt.Errorf("unmarshal pool %d: %d trailing bytes", p.Id, len(rest))
	}
	return nil
}
