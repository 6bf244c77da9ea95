// Package dialog implements the conversation state machine: it tracks each
// user's position in the multi-step dialogue, interprets replies according
// to the current state, mutates the stored records and produces exactly one
// reply per inbound message.
package dialog

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/matching"
	"github.com/agromatch/agromatch/internal/notify"
	"github.com/agromatch/agromatch/internal/store"
	"github.com/agromatch/agromatch/internal/texts"
)

// Incoming is a single inbound message event.
type Incoming struct {
	From       string
	Body       string
	Attachment string
}

// request carries the resolved turn context into a state handler.
type request struct {
	from       string
	user       *farm.User
	state      *farm.ConversationState
	text       string // trimmed message body
	attachment string
	lang       string
}

// outcome is what a handler decides: the reply, the state transition and
// any post-commit notices. Next and Clear are mutually exclusive; when both
// are zero the state is left untouched (validation re-prompts).
type outcome struct {
	reply   string
	next    farm.StateName
	data    *farm.StateData
	clear   bool
	notices []notify.Notice
}

type handlerFunc func(ctx context.Context, req *request) (*outcome, error)

// Deps aggregates the collaborators the bot needs.
type Deps struct {
	Store    store.Store
	Notifier notify.Notifier
	Texts    texts.Renderer
	Engine   *matching.Engine
	Logger   *zap.Logger

	// SequentialReview switches the multi-result presentation from the
	// numbered list to the one-at-a-time accept/skip walk.
	SequentialReview bool
}

// Bot is the dialogue controller. All durable state lives in the store;
// the bot itself only holds the handler table and per-user locks.
type Bot struct {
	store    store.Store
	notifier notify.Notifier
	texts    texts.Renderer
	engine   *matching.Engine
	logger   *zap.Logger

	sequentialReview bool

	handlers map[farm.StateName]handlerFunc
	locks    sync.Map // user id -> *sync.Mutex
}

// New builds the bot and registers one handler per dialogue state.
func New(deps Deps) *Bot {
	b := &Bot{
		store:    deps.Store,
		notifier: deps.Notifier,
		texts:    deps.Texts,
		engine:   deps.Engine,
		logger:   deps.Logger,

		sequentialReview: deps.SequentialReview,
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	if b.texts == nil {
		b.texts = texts.NewCatalog()
	}

	b.handlers = map[farm.StateName]handlerFunc{
		farm.StateAwaitingRole: b.handleRoleSelection,

		farm.StateWorkerRegName:     b.handleWorkerName,
		farm.StateWorkerRegLocation: b.handleWorkerLocation,
		farm.StateWorkerRegID:       b.handleWorkerID,

		farm.StateWorkerPrefWorkType: b.handleWorkTypePref,
		farm.StateWorkerPrefLocation: b.handleDistancePref,
		farm.StateWorkerPrefHours:    b.handleHoursPref,

		farm.StateWorkerUpdateMenu:     b.handleUpdateMenu,
		farm.StateWorkerUpdateWorkType: b.handleWorkTypeUpdate,
		farm.StateWorkerUpdatePayRate:  b.handlePayRateUpdate,
		farm.StateWorkerUpdateDistance: b.handleDistanceUpdate,
		farm.StateWorkerUpdateHours:    b.handleHoursUpdate,
		farm.StateWorkerActualLocation: b.handleLocationUpdate,

		farm.StateOwnerRegName:     b.handleOwnerName,
		farm.StateOwnerRegFarmName: b.handleFarmName,
		farm.StateOwnerRegLocation: b.handleOwnerLocation,

		farm.StateJobWorkType:      b.handleJobWorkType,
		farm.StateJobWorkersNeeded: b.handleJobWorkers,
		farm.StateJobWorkHours:     b.handleJobWorkHours,
		farm.StateJobPaymentType:   b.handleJobPaymentType,
		farm.StateJobPayment:       b.handleJobPayment,
		farm.StateJobLocation:      b.handleJobLocation,
		farm.StateJobTransport:     b.handleJobTransportation,
		farm.StateJobMeetingPoint:  b.handleJobMeetingPoint,
		farm.StateJobDescription:   b.handleJobDescription,

		farm.StateSelectingFromRecs: b.handleSelectFromRecommendations,
		farm.StateReviewingRec:      b.handleRecommendationReview,
		farm.StateJobDetailsView:    b.handleJobDetailsView,
		farm.StateViewingJobs:       b.handleViewingJobs,
		farm.StateJobAction:         b.handleJobAction,

		farm.StateChatting: b.handleChatMessage,
	}

	return b
}

// HandleMessage processes one inbound message to completion and returns
// the reply text. It never returns an error: collaborator failures are
// logged and the user gets either the handler's reply or a generic
// fallback.
func (b *Bot) HandleMessage(ctx context.Context, in Incoming) string {
	// Messaging channels serialize per sender in practice; the lock makes
	// that assumption hold when they do not.
	mu := b.userLock(in.From)
	mu.Lock()
	defer mu.Unlock()

	user, err := b.store.GetUser(ctx, in.From)
	if err != nil {
		b.logger.Error("loading user", zap.String("user", in.From), zap.Error(err))
		return b.texts.Render("fallback", "en", nil)
	}

	state, err := b.store.GetState(ctx, in.From)
	if err != nil {
		b.logger.Error("loading conversation state", zap.String("user", in.From), zap.Error(err))
		return b.texts.Render("fallback", "en", nil)
	}

	req := &request{
		from:       in.From,
		user:       user,
		state:      state,
		text:       strings.TrimSpace(in.Body),
		attachment: strings.TrimSpace(in.Attachment),
		lang:       b.resolveLanguage(user, in.Body),
	}

	if reply, ok := b.handleLanguageSwitch(ctx, req); ok {
		return reply
	}

	out := b.route(ctx, req)

	if err := b.commit(ctx, in.From, out); err != nil {
		b.logger.Error("persisting state transition",
			zap.String("user", in.From),
			zap.Error(err),
		)
	}
	b.fireNotices(ctx, out.notices)

	return out.reply
}

// route picks the handler for the turn: active state first, then the
// top-level menu flow.
func (b *Bot) route(ctx context.Context, req *request) *outcome {
	userID := b.userID(req)

	if req.state != nil {
		handler, ok := b.handlers[req.state.State]
		if !ok {
			// Defensive: a state name with no handler gets a generic
			// fallback and no mutation.
			b.logger.Warn("unrecognized conversation state",
				zap.String("user", userID),
				zap.String("state", string(req.state.State)),
			)
			return &outcome{reply: b.render(req, "fallback", nil)}
		}

		out, err := handler(ctx, req)
		if err != nil {
			b.logger.Error("state handler failed",
				zap.String("user", userID),
				zap.String("state", string(req.state.State)),
				zap.Error(err),
			)
			return &outcome{reply: b.render(req, "fallback", nil)}
		}
		return out
	}

	if req.user == nil {
		return b.welcomeNewUser(ctx, req)
	}

	if req.user.Registered {
		return b.handleStableMenu(ctx, req)
	}

	// Known but unregistered user with no active state: restart at role
	// selection.
	return &outcome{
		reply: b.render(req, "welcome", nil),
		next:  farm.StateAwaitingRole,
	}
}

// welcomeNewUser creates the pending-role user record and shows the role
// prompt.
func (b *Bot) welcomeNewUser(ctx context.Context, req *request) *outcome {
	user := &farm.User{
		ID:   req.from,
		Role: farm.RoleUnknown,
		Profile: farm.Profile{
			Language: req.lang,
		},
	}
	if err := b.store.CreateUser(ctx, user); err != nil {
		b.logger.Error("creating user", zap.String("user", user.ID), zap.Error(err))
		return &outcome{reply: b.render(req, "fallback", nil)}
	}
	req.user = user

	return &outcome{
		reply: b.render(req, "welcome", nil),
		next:  farm.StateAwaitingRole,
	}
}

// handleStableMenu interprets a message from a registered user with no
// active state: the universal menu/help commands or a menu-item number.
func (b *Bot) handleStableMenu(ctx context.Context, req *request) *outcome {
	switch strings.ToLower(req.text) {
	case "menu", "menú", "inicio":
		return b.showMainMenu(req)
	case "help", "ayuda":
		return &outcome{reply: b.render(req, "help", nil)}
	}

	out, err := b.handleMenuSelection(ctx, req)
	if err != nil {
		b.logger.Error("menu selection failed",
			zap.String("user", b.userID(req)),
			zap.Error(err),
		)
		return &outcome{reply: b.render(req, "fallback", nil)}
	}
	return out
}

// showMainMenu renders the role-appropriate stable menu and clears any
// residual state.
func (b *Bot) showMainMenu(req *request) *outcome {
	key := "worker_menu"
	if req.user != nil && req.user.Role == farm.RoleOwner {
		key = "owner_menu"
	}
	return &outcome{reply: b.render(req, key, nil), clear: true}
}

// commit persists the handler's transition decision before any notices go
// out.
func (b *Bot) commit(ctx context.Context, userID string, out *outcome) error {
	switch {
	case out.clear:
		return b.store.ClearState(ctx, userID)
	case out.next != "":
		return b.store.SetState(ctx, userID, out.next, out.data)
	default:
		return nil
	}
}

// fireNotices delivers cross-user notifications best-effort. A delivery
// failure never affects the primary reply.
func (b *Bot) fireNotices(ctx context.Context, notices []notify.Notice) {
	if b.notifier == nil {
		return
	}
	for _, notice := range notices {
		if err := b.notifier.Send(ctx, notice.To, notice.Body); err != nil {
			b.logger.Warn("notification delivery failed",
				zap.String("to", notice.To),
				zap.Error(err),
			)
		}
	}
}

func (b *Bot) resolveLanguage(user *farm.User, body string) string {
	if user != nil && user.Profile.Language != "" {
		return user.Profile.Language
	}
	return texts.Detect(body)
}

// handleLanguageSwitch intercepts the explicit language commands. The
// switch persists on existing users; at a stable menu the reply replays
// the menu in the new language.
func (b *Bot) handleLanguageSwitch(ctx context.Context, req *request) (string, bool) {
	var lang string
	switch strings.ToLower(req.text) {
	case "english", "inglés", "ingles":
		lang = "en"
	case "español", "espanol", "spanish":
		lang = "es"
	default:
		return "", false
	}

	req.lang = lang
	if req.user != nil {
		if err := b.store.MergeProfile(ctx, req.user.ID, farm.ProfilePatch{Language: farm.String(lang)}); err != nil {
			b.logger.Warn("persisting language", zap.String("user", req.user.ID), zap.Error(err))
		}
		req.user.Profile.Language = lang
	}

	confirmation := b.render(req, "language_set", nil)
	if req.state != nil {
		// Mid-flow switch: the dialogue stays on its current step, so no
		// menu is shown. The next message continues in the new language.
		return confirmation, true
	}
	if req.user != nil && req.user.Registered {
		return confirmation + "\n\n" + b.showMainMenu(req).reply, true
	}
	return confirmation + "\n\n" + b.render(req, "welcome", nil), true
}

func (b *Bot) render(req *request, key string, params texts.Params) string {
	return b.texts.Render(key, req.lang, params)
}

func (b *Bot) userLock(id string) *sync.Mutex {
	mu, _ := b.locks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (b *Bot) userID(req *request) string {
	if req.user != nil {
		return req.user.ID
	}
	return req.from
}
