package position

import (
	"testing"

	"github.com/hailam/camelot/internal/board"
	"github.com/hailam/camelot/internal/piece"
	"github.com/stretchr/testify/require"
)

func TestNewInitialPieceCounts(t *testing.T) {
	pos := NewInitial()
	require.Equal(t, 14, pos.CountPieces(piece.White))
	require.Equal(t, 14, pos.CountPieces(piece.Black))
}

func TestNewInitialIsSymmetric(t *testing.T) {
	pos := NewInitial()
	for _, sq := range board.AddressableSquares() {
		white := pos.At(sq)
		if white.IsEmpty() || white.Color != piece.White {
			continue
		}
		mirrored := mirrorRank(sq)
		black := pos.At(mirrored)
		require.False(t, black.IsEmpty(), "expected a mirrored black piece at %s for white piece at %s", mirrored, sq)
		require.Equal(t, piece.Black, black.Color)
		require.Equal(t, white.Kind, black.Kind)
	}
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewInitial()
	cp := pos.Copy()
	sq, _ := board.ParseSquare("E6")
	cp.Clear(sq)
	require.False(t, pos.At(sq).IsEmpty(), "mutating the copy must not affect the original")
}

func TestCastleOfAndEnemyCastleOf(t *testing.T) {
	require.Equal(t, board.WhiteCastle, CastleOf(piece.White))
	require.Equal(t, board.BlackCastle, CastleOf(piece.Black))
	require.Equal(t, board.BlackCastle, EnemyCastleOf(piece.White))
	require.Equal(t, board.WhiteCastle, EnemyCastleOf(piece.Black))
}

func TestValidateRejectsNegativeCastleMoves(t *testing.T) {
	pos := New()
	pos.CastleMoves[piece.White] = -1
	require.Error(t, pos.Validate())
}

func TestLayoutRoundTrip(t *testing.T) {
	pos := NewInitial()
	layout := pos.Layout()

	parsed, err := ParseLayout(layout)
	require.NoError(t, err)
	require.Equal(t, pos.Squares, parsed.Squares)
}

func TestParseLayoutRejectsMalformedToken(t *testing.T) {
	_, err := ParseLayout("E6:WM garbage")
	require.Error(t, err)
}

func TestParseLayoutEmptyStringIsEmptyBoard(t *testing.T) {
	pos, err := ParseLayout("")
	require.NoError(t, err)
	require.Equal(t, 0, pos.CountPieces(piece.White))
	require.Equal(t, 0, pos.CountPieces(piece.Black))
}
