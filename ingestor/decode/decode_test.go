package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// A upload with a header line decodes into rows keeping the physical line numbers.
func TestDecodeUploadWithHeader(t *testing.T) {
	data := []byte("grade,home team,away team,date,round\n" +
		"A1,Lions,Tigers,23/05/2026,1\n" +
		"A1,Bears,Wolves,24/05/2026,1\n")

	rows, err := DecodeUpload(data)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "A1", rows[0].GradeCode)
	assert.Equal(t, "Lions", rows[0].HomeTeamName)
	assert.Equal(t, "Tigers", rows[0].AwayTeamName)
	assert.Equal(t, "23/05/2026", rows[0].Date)
	assert.Equal(t, "1", rows[0].RoundNumber)
	assert.Equal(t, 2, rows[0].Line)
	assert.Equal(t, 3, rows[1].Line)
}

// A upload without a header decodes from the first line.
func TestDecodeUploadWithoutHeader(t *testing.T) {
	data := []byte("A1,Lions,Tigers,23/05/2026,1\n")

	rows, err := DecodeUpload(data)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 1, rows[0].Line)
}

// The sixth column is the optional game type.
func TestDecodeUploadGameType(t *testing.T) {
	data := []byte("A1,Lions,Tigers,23/05/2026,1,final\n" +
		"A1,Bears,Wolves,24/05/2026,1\n")

	rows, err := DecodeUpload(data)

	assert.NoError(t, err)
	assert.Equal(t, "final", rows[0].GameType)
	assert.Empty(t, rows[1].GameType)
}

// A line with the wrong column count is a decode error naming the line.
func TestDecodeUploadWrongColumnCount(t *testing.T) {
	data := []byte("A1,Lions,Tigers,23/05/2026,1\n" +
		"A1,Bears\n")

	rows, err := DecodeUpload(data)

	assert.Nil(t, rows)
	assert.Error(t, err)

	var decodeErr *DecodeError
	assert.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 2, decodeErr.Line)
}

// A empty upload decodes into no rows.
func TestDecodeUploadEmpty(t *testing.T) {
	rows, err := DecodeUpload([]byte(""))

	assert.NoError(t, err)
	assert.Empty(t, rows)
}
