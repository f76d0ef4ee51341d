package common

type Square int

const SquareNone Square = -1

const (
	FileA = iota
	FileB
	FileC
	FileD
	FileE
	FileF
	FileG
	FileH
)

const (
	Rank1 = iota
	Rank2
	Rank3
	Rank4
	Rank5
	Rank6
	Rank7
	Rank8
)

func MakeSquare(file, rank int) Square {
	return Square((rank << 3) | file)
}

func (sq Square) File() int {
	return int(sq) & 7
}

func (sq Square) Rank() int {
	return int(sq) >> 3
}

// Flip mirrors the square vertically (a1 <-> a8).
func (sq Square) Flip() Square {
	return sq ^ 56
}

func (sq Square) IsDark() bool {
	return (sq.File() & 1) == (sq.Rank() & 1)
}

func (sq Square) String() string {
	return SquareName(sq)
}

// SquareName converts a square to algebraic notation (g1, a7, etc.)
func SquareName(sq Square) string {
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}

func ParseSquare(s string) (Square, bool) {
	if len(s) != 2 ||
		s[0] < 'a' || s[0] > 'h' ||
		s[1] < '1' || s[1] > '8' {
		return SquareNone, false
	}
	return MakeSquare(int(s[0]-'a'), int(s[1]-'1')), true
}
