package llmjson

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

type scored struct {
	Score  int    `json:"score" validate:"gte=0,lte=100"`
	Reason string `json:"reason" validate:"required"`
}

func Test_Decode_PlainAndFenced(t *testing.T) {
	inputs := []string{
		`{"score": 80, "reason": "good fit"}`,
		"```json\n{\"score\": 80, \"reason\": \"good fit\"}\n```",
		"  ```\n{\"score\": 80, \"reason\": \"good fit\"}\n```  ",
	}

	for _, input := range inputs {
		result, err := Decode[scored](input)
		require.NoError(t, err, input)
		assert.Equal(t, scored{Score: 80, Reason: "good fit"}, result)
	}
}

func Test_Decode_RejectsSurroundingProse(t *testing.T) {
	_, err := Decode[scored]("Here you go: {\"score\": 80, \"reason\": \"ok\"}")

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Raw, "Here you go")

	_, err = Decode[scored](`{"score": 80, "reason": "ok"} thanks!`)
	assert.ErrorAs(t, err, &parseErr)
}

func Test_Decode_ValidatesSchema(t *testing.T) {
	_, err := Decode[scored](`{"score": 140, "reason": "too high"}`)
	assert.ErrorAs(t, err, new(*ParseError))

	_, err = Decode[scored](`{"score": 40}`)
	assert.ErrorAs(t, err, new(*ParseError))
}

func Test_Decode_ArraysAndMaps(t *testing.T) {
	queries, err := Decode[[]string](`["go developer", "backend engineer", "platform engineer"]`)
	require.NoError(t, err)
	assert.Len(t, queries, 3)

	ranking, err := Decode[map[string]scored](`{"1": {"score": 10, "reason": "meh"}}`)
	require.NoError(t, err)
	assert.Equal(t, 10, ranking["1"].Score)

	_, err = Decode[[]string]("")
	assert.ErrorAs(t, err, new(*ParseError))
}

func Test_Decode_ReturnsZeroValueOnError(t *testing.T) {
	ranking, err := Decode[map[string]scored](`{"1": {"score": 80, "reason": "ok"}, "2": {"score": 72.5, "reason": "x"}}`)

	assert.ErrorAs(t, err, new(*ParseError))
	assert.Nil(t, ranking)
}
