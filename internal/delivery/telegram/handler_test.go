package telegram

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/entities"
	"github.com/aliskhannn/guess-the-flag-bot/internal/domain/game"
	"github.com/aliskhannn/guess-the-flag-bot/internal/service"
	"github.com/aliskhannn/guess-the-flag-bot/internal/storage"
)

const (
	testChatID = int64(10)
	testUserID = int64(20)
)

type fakeBot struct {
	mu       sync.Mutex
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (b *fakeBot) StopReceivingUpdates() {}

func (b *fakeBot) lastSent(t *testing.T) tgbotapi.Chattable {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.sent)
	return b.sent[len(b.sent)-1]
}

func (b *fakeBot) lastToast(t *testing.T) string {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.NotEmpty(t, b.requests)
	cb, ok := b.requests[len(b.requests)-1].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	return cb.Text
}

func (b *fakeBot) sentCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sent)
}

type nopUsers struct{}

func (nopUsers) EnsureUser(context.Context, int64, int64) error { return nil }

type handlerFixture struct {
	h     *Handler
	bot   *fakeBot
	games *service.GameService
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	catalog := []entities.Country{
		{Name: "Estonia", Emoji: "🇪🇪"}, {Name: "France", Emoji: "🇫🇷"}, {Name: "Germany", Emoji: "🇩🇪"},
		{Name: "Ireland", Emoji: "🇮🇪"}, {Name: "Italy", Emoji: "🇮🇹"}, {Name: "Monaco", Emoji: "🇲🇨"},
	}

	clock := clockwork.NewFakeClock()
	games := service.NewGameService(
		catalog,
		storage.NewSessionStorage(clock),
		service.NopRecorder{},
		rand.New(rand.NewPCG(7, 9)),
		clock,
		zap.NewNop(),
		game.Options{},
	)

	bot := &fakeBot{}
	h := NewHandler(bot, zap.NewNop(), games, service.NewStatsService(nil), nopUsers{}, Options{})
	return &handlerFixture{h: h, bot: bot, games: games}
}

func commandUpdate(command string) tgbotapi.Update {
	text := "/" + command
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			MessageID: 1,
			From:      &tgbotapi.User{ID: testUserID},
			Chat:      &tgbotapi.Chat{ID: testChatID},
			Text:      text,
			Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(text)}},
		},
	}
}

func callbackUpdate(data string) tgbotapi.Update {
	return tgbotapi.Update{
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb",
			From:    &tgbotapi.User{ID: testUserID},
			Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: testChatID}},
			Data:    data,
		},
	}
}

func (f *handlerFixture) current(t *testing.T) entities.GameSession {
	t.Helper()
	s, err := f.games.Current(context.Background(), testChatID)
	require.NoError(t, err)
	return s
}

func TestHandler_PlaySendsQuestion(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.handleUpdate(context.Background(), commandUpdate(cmdPlay))

	msg, ok := f.bot.lastSent(t).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, tgbotapi.ModeHTML, msg.ParseMode)

	s := f.current(t)
	assert.Contains(t, msg.Text, "Tap the flag of")
	assert.Contains(t, msg.Text, s.Target().Name)
	assert.Contains(t, msg.Text, "Your score is 0")

	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, entities.ChoicesPerRound)
	for i, row := range kb.InlineKeyboard {
		require.Len(t, row, 1)
		assert.Equal(t, s.ActiveChoices()[i].Emoji, row[0].Text)
		assert.Equal(t, buildFlagCallback(s.Ref(), i), *row[0].CallbackData)
	}
}

func TestHandler_CorrectTapEditsMessage(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.h.handleUpdate(ctx, commandUpdate(cmdPlay))
	s := f.current(t)

	f.h.handleUpdate(ctx, callbackUpdate(buildFlagCallback(s.Ref(), s.CorrectIndex)))

	assert.Equal(t, "Correct", f.bot.lastToast(t))

	edit, ok := f.bot.lastSent(t).(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 5, edit.MessageID)
	assert.Contains(t, edit.Text, "Your score is 1")
	assert.Contains(t, edit.Text, "🔄")

	require.NotNil(t, edit.ReplyMarkup)
	row := edit.ReplyMarkup.InlineKeyboard[0]
	require.Len(t, row, 2)
	assert.True(t, strings.HasPrefix(*row[0].CallbackData, actionNext+":"))
	assert.True(t, strings.HasPrefix(*row[1].CallbackData, actionReset+":"))
}

func TestHandler_WrongTapFadesOtherFlags(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.h.handleUpdate(ctx, commandUpdate(cmdPlay))
	s := f.current(t)
	wrong := (s.CorrectIndex + 1) % entities.ChoicesPerRound

	f.h.handleUpdate(ctx, callbackUpdate(buildFlagCallback(s.Ref(), wrong)))

	assert.Equal(t, "Wrong! That's the flag of "+s.ActiveChoices()[wrong].Name, f.bot.lastToast(t))

	edit, ok := f.bot.lastSent(t).(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 2, strings.Count(edit.Text, "▫️"))
	assert.Contains(t, edit.Text, "Your score is 0")
}

func TestHandler_StaleTapOnlyToasts(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.h.handleUpdate(ctx, commandUpdate(cmdPlay))
	s := f.current(t)
	data := buildFlagCallback(s.Ref(), s.CorrectIndex)

	f.h.handleUpdate(ctx, callbackUpdate(data))
	sent := f.bot.sentCount()
	after := f.current(t)

	f.h.handleUpdate(ctx, callbackUpdate(data))

	assert.Equal(t, msgStaleButton, f.bot.lastToast(t))
	assert.Equal(t, sent, f.bot.sentCount())
	assert.Equal(t, after.Score, f.current(t).Score)
	assert.Equal(t, after.RoundsRemaining, f.current(t).RoundsRemaining)
}

func TestHandler_ContinueAndReset(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.h.handleUpdate(ctx, commandUpdate(cmdPlay))
	s := f.current(t)
	f.h.handleUpdate(ctx, callbackUpdate(buildFlagCallback(s.Ref(), s.CorrectIndex)))

	result := f.current(t)
	f.h.handleUpdate(ctx, callbackUpdate(buildNextCallback(result.Ref())))

	next := f.current(t)
	assert.Equal(t, entities.PhaseAwaitingAnswer, next.Phase)
	assert.Equal(t, 2, next.Round())
	assert.Equal(t, "", f.bot.lastToast(t))

	f.h.handleUpdate(ctx, callbackUpdate(buildResetCallback(next.Ref())))

	restarted := f.current(t)
	assert.NotEqual(t, s.ID, restarted.ID)
	assert.Equal(t, 0, restarted.Score)
	assert.Equal(t, entities.RoundsPerGame, restarted.RoundsRemaining)
}

func TestHandler_FullGameShowsGameOver(t *testing.T) {
	f := newHandlerFixture(t)
	ctx := context.Background()

	f.h.handleUpdate(ctx, commandUpdate(cmdPlay))

	for round := 1; round <= entities.RoundsPerGame; round++ {
		s := f.current(t)
		f.h.handleUpdate(ctx, callbackUpdate(buildFlagCallback(s.Ref(), s.CorrectIndex)))
		if round < entities.RoundsPerGame {
			f.h.handleUpdate(ctx, callbackUpdate(buildNextCallback(f.current(t).Ref())))
		}
	}

	edit, ok := f.bot.lastSent(t).(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Contains(t, edit.Text, titleGameOver)
	assert.Contains(t, edit.Text, "Your final score is 8")

	require.NotNil(t, edit.ReplyMarkup)
	require.Len(t, edit.ReplyMarkup.InlineKeyboard, 1)
	assert.Equal(t, btnRestart, edit.ReplyMarkup.InlineKeyboard[0][0].Text)
}

func TestHandler_MalformedCallback(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.handleUpdate(context.Background(), callbackUpdate("flag:not-a-uuid:1:0"))

	assert.Equal(t, msgStaleButton, f.bot.lastToast(t))
	assert.Equal(t, 0, f.bot.sentCount())
}

func TestHandler_ScoreWithoutGame(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.handleUpdate(context.Background(), commandUpdate(cmdScore))

	msg, ok := f.bot.lastSent(t).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, msgNoGame, msg.Text)
}

func TestHandler_StatsDisabled(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.handleUpdate(context.Background(), commandUpdate(cmdStats))

	msg, ok := f.bot.lastSent(t).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, msgStatsDisabled, msg.Text)
}

func TestHandler_PlainTextPointsToButtons(t *testing.T) {
	f := newHandlerFixture(t)

	f.h.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: testUserID},
			Chat: &tgbotapi.Chat{ID: testChatID},
			Text: "France",
		},
	})

	msg, ok := f.bot.lastSent(t).(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, msgUseButtons, msg.Text)
}
