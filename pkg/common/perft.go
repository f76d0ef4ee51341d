package common

// Perft counts the leaf nodes of the legal move tree to the given depth.
func Perft(p *Position, depth int) int64 {
	if depth <= 0 {
		return 1
	}
	var ml = p.LegalMoves()
	if depth == 1 {
		return int64(len(ml))
	}
	var result int64
	for _, move := range ml {
		var child, _ = p.MakeMove(move)
		result += Perft(child, depth-1)
	}
	return result
}

// Divide runs Perft for every root move and reports each subtotal.
func Divide(p *Position, depth int, report func(move Move, nodes int64)) int64 {
	var result int64
	for _, move := range p.LegalMoves() {
		var child, _ = p.MakeMove(move)
		var nodes = Perft(child, depth-1)
		if report != nil {
			report(move, nodes)
		}
		result += nodes
	}
	return result
}
