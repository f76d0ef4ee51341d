package uci

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/ChizhovVadim/CounterUci/pkg/common"
)

var benchFens = []string{
	common.InitialPositionFen,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 10",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 11",
	"4rrk1/pp1n3p/3q2pQ/2p1pb2/2PP4/2P3N1/P2B2PP/4RRK1 b - - 7 19",
	"r3r1k1/2p2ppp/p1p1bn2/8/1q2P3/2NPQN2/PPP3PP/R4RK1 b - - 2 15",
	"r1bbk1nr/pp3p1p/2n5/1N4p1/2Np1B2/8/PPP2PPP/2KR1B1R w kq - 0 13",
	"r1bq1rk1/ppp1nppp/4n3/3p3Q/3P4/1BP1B3/PP1N2PP/R4RK1 w - - 1 16",
	"4r1k1/r1q2ppp/ppp2n2/4P3/5Rb1/1N1BQ3/PPP3PP/R5K1 w - - 1 17",
	"2rqkb1r/ppp2p2/2npb1p1/1N1Nn2p/2P1PP2/8/PP2B1PP/R1BQK2R b KQ - 0 11",
	"r1bq1r1k/b1p1npp1/p2p3p/1p6/3PP3/1B2NN2/PP3PPP/R2Q1RK1 w - - 1 16",
	"3r1rk1/p5pp/bpp1pp2/8/q1PP1P2/b3P3/P2NQRPP/1R2B1K1 b - - 6 22",
	"r1q2rk1/2p1bppp/2Pp4/p6b/Q1PNp3/4B3/PP1R1PPP/2K4R w - - 2 18",
	"4k2r/1pb2ppp/1p2p3/1R1p4/3P4/2r1PN2/P4PPP/1R4K1 b - - 3 22",
	"3q2k1/pb3p1p/4pbp1/2r5/PpN2N2/1P2P2P/5PP1/Q2R2K1 b - - 4 26",
	"8/8/8/8/5kp1/P7/8/1K1N4 w - - 0 1",
	"8/8/1P6/5pr1/8/4R3/7k/2K5 w - - 0 1",
}

// BenchCommands builds the command list for
// bench [ttSize] [threads] [limit] [fenFile] [limitType].
// fenFile is default, current or a path; paths ending in .zst are zstd-compressed.
func BenchCommands(current *common.Position, args []string) ([]string, error) {
	var arg = func(i int, def string) string {
		if i < len(args) {
			return args[i]
		}
		return def
	}
	var ttSize = arg(0, "16")
	var threads = arg(1, "1")
	var limit = arg(2, "6")
	var fenFile = arg(3, "default")
	var limitType = arg(4, "depth")

	var goCommand = "go " + limitType + " " + limit
	if limitType == "eval" {
		goCommand = "eval"
	}

	var fens []string
	switch fenFile {
	case "default":
		fens = benchFens
	case "current":
		fens = []string{current.FEN()}
	default:
		var err error
		fens, err = readBenchFile(fenFile)
		if err != nil {
			return nil, err
		}
	}

	var list = []string{
		"setoption name Threads value " + threads,
		"setoption name Hash value " + ttSize,
		"ucinewgame",
	}
	for _, fen := range fens {
		if strings.Contains(fen, "setoption") {
			list = append(list, fen)
		} else {
			list = append(list, "position fen "+fen, goCommand)
		}
	}
	return list, nil
}

func readBenchFile(path string) ([]string, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("bench fen file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		var dec, err = zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("bench fen file %v: %w", path, err)
		}
		defer dec.Close()
		r = dec
	}

	var fens []string
	var scanner = bufio.NewScanner(r)
	for scanner.Scan() {
		var line = strings.TrimSpace(scanner.Text())
		if line != "" {
			fens = append(fens, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("bench fen file %v: %w", path, err)
	}
	return fens, nil
}
