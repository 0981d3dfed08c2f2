package pbtk

import "github.com/san-kum/fbio/internal/dynamo"

// State indices. The first three are amounts (fraction of dose), the next
// three concentrations, the last five cumulative amounts.
const (
	LumenSeg1 = iota
	LumenSeg2
	LumenSeg3
	CWall
	CLiver
	CRest
	CumLumenToWall
	CumRestToWall
	CumWallToLiver
	CumRestToLiver
	CumLiverToRest

	NumStates
)

var StateNames = [NumStates]string{
	"A_lumen1",
	"A_lumen2",
	"A_lumen3",
	"C_wall",
	"C_liver",
	"C_rest",
	"A_lumen2wall",
	"A_rest2wall",
	"A_wall2liver",
	"A_rest2liver",
	"A_liver2rest",
}

// InitialState places a unit dose in the first lumen segment.
func InitialState() dynamo.State {
	x := make(dynamo.State, NumStates)
	x[LumenSeg1] = 1
	return x
}
