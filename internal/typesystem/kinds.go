package typesystem

import "fmt"

// Kind represents the "type of a type".
// * (Star) is the kind of proper types (int, Vec<int>).
// * -> * is the kind of type constructors (Vec, Option).
type Kind interface {
	String() string
	Equal(Kind) bool
}

// KStar represents the kind of a value type (*).
type KStar struct{}

func (k KStar) String() string { return "*" }
func (k KStar) Equal(other Kind) bool {
	_, ok := other.(KStar)
	return ok
}

// KArrow represents a higher-kinded type (k1 -> k2).
type KArrow struct {
	Left  Kind
	Right Kind
}

// String renders arrows right-associatively: * -> * -> *. Only an arrow in
// argument position is parenthesized, as in (* -> *) -> *.
func (k KArrow) String() string {
	left := k.Left.String()
	if _, ok := k.Left.(KArrow); ok {
		left = "(" + left + ")"
	}
	return fmt.Sprintf("%s -> %s", left, k.Right.String())
}

func (k KArrow) Equal(other Kind) bool {
	o, ok := other.(KArrow)
	if !ok {
		return false
	}
	return k.Left.Equal(o.Left) && k.Right.Equal(o.Right)
}

var Star Kind = KStar{}

// MakeArrow builds an N-ary arrow, e.g. MakeArrow(Star, Star, Star) is * -> * -> *.
func MakeArrow(args ...Kind) Kind {
	if len(args) == 0 {
		return Star
	}
	if len(args) == 1 {
		return args[0]
	}
	return KArrow{Left: args[0], Right: MakeArrow(args[1:]...)}
}

var (
	unaryConstructor  = MakeArrow(Star, Star)
	binaryConstructor = MakeArrow(Star, Star, Star)
)
