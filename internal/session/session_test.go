package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linguakit/linguapp/internal/words"
)

type speakerSpy struct {
	calls []struct{ text, lang string }
}

func (s *speakerSpy) Speak(text, lang string) {
	s.calls = append(s.calls, struct{ text, lang string }{text, lang})
}

func testWords() []words.Record {
	mk := func(term, translation, sentence, category string, status words.Status) words.Record {
		return words.Record{
			ID:              words.MakeID(term),
			Term:            term,
			Translation:     translation,
			ExampleSentence: sentence,
			TagID:           "t1",
			CategoryName:    category,
			Status:          status,
		}
	}
	return []words.Record{
		mk("cat", "kot", "The cat sleeps all day.", "Animals", words.StatusNew),
		mk("dog", "pies", "A dog barks at night.", "Animals", words.StatusLearning),
		mk("eagle", "orzel", "The eagle soars high.", "Animals", words.StatusMastered),
		mk("table", "stol", "Put it on the table.", "Furniture", words.StatusNew),
	}
}

func rng() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestNewPracticeFiltersCategoryAndMastery(t *testing.T) {
	s, err := New(testWords(), "Animals", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)

	// "eagle" is mastered and "table" is a different category.
	assert.Equal(t, 2, s.Total())
	assert.Equal(t, KindPractice, s.Kind)
	assert.True(t, s.Active())
	assert.NotEqual(t, "", s.ID.String())
}

func TestNewExamTakesEveryWord(t *testing.T) {
	s, err := New(testWords(), "", KindExam, DefaultLimits, rng())
	require.NoError(t, err)

	assert.Equal(t, 4, s.Total())
}

func TestNewTruncatesToLimit(t *testing.T) {
	all := testWords()
	s, err := New(all, "", KindExam, Limits{Practice: 15, Exam: 2}, rng())
	require.NoError(t, err)

	assert.Equal(t, 2, s.Total())
}

func TestNewEmptyPool(t *testing.T) {
	_, err := New(testWords(), "Nonexistent", KindPractice, DefaultLimits, rng())
	assert.ErrorIs(t, err, ErrEmptyPool)

	_, err = New(nil, "", KindExam, DefaultLimits, rng())
	assert.ErrorIs(t, err, ErrEmptyPool)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New(testWords(), "", Kind("review"), DefaultLimits, rng())
	assert.Error(t, err)
}

func TestShuffleIsDeterministicForSeed(t *testing.T) {
	a, err := New(testWords(), "", KindExam, DefaultLimits, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	b, err := New(testWords(), "", KindExam, DefaultLimits, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	for range a.pool {
		ca, cb := a.CurrentCard(), b.CurrentCard()
		assert.Equal(t, ca.Front, cb.Front)
		_, err := a.Answer(true)
		require.NoError(t, err)
		_, err = b.Answer(true)
		require.NoError(t, err)
	}
}

func TestRevealSpeaksOnceAndIsIdempotent(t *testing.T) {
	s, err := New(testWords(), "Furniture", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)

	spy := &speakerSpy{}
	require.NoError(t, s.Reveal(spy))
	require.NoError(t, s.Reveal(spy))

	require.Len(t, spy.calls, 1)
	assert.Equal(t, "table", spy.calls[0].text)
	assert.Equal(t, SpeechLang, spy.calls[0].lang)

	card := s.CurrentCard()
	require.NotNil(t, card.Back)
	assert.Equal(t, "table", card.Back.Term)
}

func TestCardViewFrontHidesAnswer(t *testing.T) {
	s, err := New(testWords(), "Furniture", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)

	card := s.CurrentCard()
	assert.Nil(t, card.Back)
	assert.Equal(t, "stol", card.Front.Translation)
	assert.Equal(t, "Put it on the ____.", card.Front.ClozeSentence)
	assert.Equal(t, 1, card.Position)
	assert.Equal(t, 1, card.Total)
}

func TestCardBackSegmentsAndQuote(t *testing.T) {
	s, err := New(testWords(), "Furniture", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)
	require.NoError(t, s.Reveal(nil))

	back := s.CurrentCard().Back
	require.NotNil(t, back)
	assert.Equal(t, `"stol"`, back.QuotedTranslation)
	assert.Equal(t, []Segment{
		{Text: "Put it on the "},
		{Text: "table", Term: true},
		{Text: "."},
	}, back.Sentence)
}

func TestClozeIsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "____ chases the ____.", cloze("Cat chases the cat.", "cat"))
	assert.Equal(t, "no term set", cloze("no term set", " "))
}

func TestPracticeAnswerSetsNewStatus(t *testing.T) {
	s, err := New(testWords(), "Furniture", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)

	res, err := s.Answer(true)
	require.NoError(t, err)

	assert.Equal(t, "table", res.WordID)
	require.NotNil(t, res.NewStatus)
	assert.Equal(t, words.StatusMastered, *res.NewStatus)
	assert.True(t, res.Done)
	require.NotNil(t, res.Outcome)
	assert.Equal(t, Outcome{Kind: KindPractice, Score: 0, Total: 1}, *res.Outcome)
	assert.False(t, s.Active())
}

func TestPracticeWrongAnswerDemotes(t *testing.T) {
	s, err := New(testWords(), "Furniture", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)

	res, err := s.Answer(false)
	require.NoError(t, err)

	require.NotNil(t, res.NewStatus)
	assert.Equal(t, words.StatusLearning, *res.NewStatus)
}

func TestExamScoresWithoutMutatingStatus(t *testing.T) {
	s, err := New(testWords(), "", KindExam, DefaultLimits, rng())
	require.NoError(t, err)
	total := s.Total()

	var last AnswerResult
	for i := 0; i < total; i++ {
		correct := i%2 == 0
		res, err := s.Answer(correct)
		require.NoError(t, err)
		assert.Nil(t, res.NewStatus)
		last = res
	}

	require.True(t, last.Done)
	require.NotNil(t, last.Outcome)
	assert.Equal(t, KindExam, last.Outcome.Kind)
	assert.Equal(t, 2, last.Outcome.Score)
	assert.Equal(t, total, last.Outcome.Total)
}

func TestAnswerAdvancesAndResetsFlip(t *testing.T) {
	s, err := New(testWords(), "Animals", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)
	require.Equal(t, 2, s.Total())

	require.NoError(t, s.Reveal(nil))
	res, err := s.Answer(true)
	require.NoError(t, err)

	assert.False(t, res.Done)
	require.NotNil(t, res.Next)
	assert.Nil(t, res.Next.Back)
	assert.Equal(t, 2, res.Next.Position)
}

func TestFinishedSessionRejectsOperations(t *testing.T) {
	s, err := New(testWords(), "Furniture", KindPractice, DefaultLimits, rng())
	require.NoError(t, err)

	_, err = s.Answer(true)
	require.NoError(t, err)

	assert.ErrorIs(t, s.Reveal(nil), ErrNotActive)
	_, err = s.Answer(true)
	assert.ErrorIs(t, err, ErrNotActive)
}
