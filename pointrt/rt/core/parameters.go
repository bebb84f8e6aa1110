package core

import (
	"errors"
	"fmt"
	"math"
)

var ErrOutOfDomain = errors.New("value out of domain")

// Parameters fully describes one galaxy. It is a plain value: callers copy it,
// edit the copy and hand it back to regeneration.
type Parameters struct {
	Count           int
	Size            float64 // point size, consumed by renderers only
	Radius          float64
	Branches        int
	Spin            float64
	Randomness      float64
	RandomnessPower float64
	InsideColor     Color
	OutsideColor    Color
}

func DefaultParameters() Parameters {
	return Parameters{
		Count:           100000,
		Size:            0.01,
		Radius:          5,
		Branches:        3,
		Spin:            1,
		Randomness:      0.2,
		RandomnessPower: 3,
		InsideColor:     MustParseHex("#ff6030"),
		OutsideColor:    MustParseHex("#1b3984"),
	}
}

// Field identifies one numeric parameter.
type Field int

const (
	FieldCount Field = iota
	FieldSize
	FieldRadius
	FieldBranches
	FieldSpin
	FieldRandomness
	FieldRandomnessPower
)

// Domain is the editable range of a numeric field.
type Domain struct {
	Field   Field
	Name    string
	Min     float64
	Max     float64
	Step    float64
	Integer bool
}

// Domains lists every numeric field in panel order.
var Domains = []Domain{
	{Field: FieldCount, Name: "count", Min: 100, Max: 100000, Step: 100, Integer: true},
	{Field: FieldSize, Name: "size", Min: 0.001, Max: 0.1, Step: 0.001},
	{Field: FieldRadius, Name: "radius", Min: 0.01, Max: 20, Step: 0.01},
	{Field: FieldBranches, Name: "branches", Min: 2, Max: 20, Step: 1, Integer: true},
	{Field: FieldSpin, Name: "spin", Min: -5, Max: 5, Step: 0.001},
	{Field: FieldRandomness, Name: "randomness", Min: 0, Max: 2, Step: 0.001},
	{Field: FieldRandomnessPower, Name: "randomnessPower", Min: 1, Max: 10, Step: 0.001},
}

func DomainOf(f Field) Domain {
	for _, d := range Domains {
		if d.Field == f {
			return d
		}
	}
	panic(fmt.Sprintf("unknown parameter field %d", f))
}

// Clamp limits v to the domain, rounding integer fields.
func (d Domain) Clamp(v float64) float64 {
	if d.Integer {
		v = math.Round(v)
	}
	return math.Max(d.Min, math.Min(d.Max, v))
}

func (p *Parameters) Get(f Field) float64 {
	switch f {
	case FieldCount:
		return float64(p.Count)
	case FieldSize:
		return p.Size
	case FieldRadius:
		return p.Radius
	case FieldBranches:
		return float64(p.Branches)
	case FieldSpin:
		return p.Spin
	case FieldRandomness:
		return p.Randomness
	case FieldRandomnessPower:
		return p.RandomnessPower
	}
	panic(fmt.Sprintf("unknown parameter field %d", f))
}

// Set stores v clamped into the field's domain.
func (p *Parameters) Set(f Field, v float64) {
	v = DomainOf(f).Clamp(v)
	switch f {
	case FieldCount:
		p.Count = int(v)
	case FieldSize:
		p.Size = v
	case FieldRadius:
		p.Radius = v
	case FieldBranches:
		p.Branches = int(v)
	case FieldSpin:
		p.Spin = v
	case FieldRandomness:
		p.Randomness = v
	case FieldRandomnessPower:
		p.RandomnessPower = v
	default:
		panic(fmt.Sprintf("unknown parameter field %d", f))
	}
}

// Clamp returns a copy with every field inside its domain.
func (p Parameters) Clamp() Parameters {
	for _, d := range Domains {
		p.Set(d.Field, p.Get(d.Field))
	}
	p.InsideColor = p.InsideColor.Clamped()
	p.OutsideColor = p.OutsideColor.Clamped()
	return p
}

// Validate reports the first field outside its domain.
func (p Parameters) Validate() error {
	for _, d := range Domains {
		v := p.Get(d.Field)
		if math.IsNaN(v) || v < d.Min || v > d.Max {
			return fmt.Errorf("%s=%v not in [%v, %v]: %w", d.Name, v, d.Min, d.Max, ErrOutOfDomain)
		}
	}
	return nil
}
