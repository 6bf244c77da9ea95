package dialog

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/agromatch/agromatch/internal/farm"
	"github.com/agromatch/agromatch/internal/matching"
	"github.com/agromatch/agromatch/internal/store"
)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []struct{ To, Body string }
}

func (r *recordingNotifier) Send(_ context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, struct{ To, Body string }{to, body})
	return nil
}

func (r *recordingNotifier) all() []struct{ To, Body string } {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]struct{ To, Body string }(nil), r.sent...)
}

func newTestBot(t *testing.T, sequential bool) (*Bot, store.Store, *recordingNotifier) {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("creating store: %v", err)
	}
	rec := &recordingNotifier{}
	bot := New(Deps{
		Store:            st,
		Notifier:         rec,
		Engine:           matching.NewEngine(nil, nil),
		SequentialReview: sequential,
	})
	return bot, st, rec
}

func seedJob(t *testing.T, st store.Store, job *farm.Job) string {
	t.Helper()
	id, err := st.CreateJob(context.Background(), job)
	if err != nil {
		t.Fatalf("seeding job: %v", err)
	}
	return id
}

func mustState(t *testing.T, st store.Store, userID string) *farm.ConversationState {
	t.Helper()
	state, err := st.GetState(context.Background(), userID)
	if err != nil {
		t.Fatalf("getting state: %v", err)
	}
	if state == nil {
		t.Fatalf("expected an active conversation state for %s", userID)
	}
	return state
}

func mustNoState(t *testing.T, st store.Store, userID string) {
	t.Helper()
	state, err := st.GetState(context.Background(), userID)
	if err != nil {
		t.Fatalf("getting state: %v", err)
	}
	if state != nil {
		t.Fatalf("expected no state for %s, got %s", userID, state.State)
	}
}

func say(bot *Bot, userID, body string) string {
	return bot.HandleMessage(context.Background(), Incoming{From: userID, Body: body})
}

// registerWorker walks a fresh user through the full worker onboarding,
// leaving them registered with preferences set.
func registerWorker(t *testing.T, bot *Bot, userID string) {
	t.Helper()
	say(bot, userID, "Hello")
	say(bot, userID, "1")
	say(bot, userID, "Jane")
	say(bot, userID, "Durham")
	bot.HandleMessage(context.Background(), Incoming{From: userID, Body: "", Attachment: "https://cdn.example/id.jpg"})
	say(bot, userID, "1,2")
	say(bot, userID, "2")
	say(bot, userID, "1")
	// Completing preferences may leave a recommendation state behind when
	// jobs already exist; land on the stable menu either way.
	say(bot, userID, "menu")
}

func TestWorkerOnboardingEndToEnd(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()
	const u1 = "whatsapp:+15551110001"

	reply := say(bot, u1, "Hello")
	if !strings.Contains(reply, "select your role") {
		t.Fatalf("expected role prompt, got %q", reply)
	}
	if state := mustState(t, st, u1); state.State != farm.StateAwaitingRole {
		t.Fatalf("expected awaiting role, got %s", state.State)
	}

	say(bot, u1, "1")
	user, err := st.GetUser(ctx, u1)
	if err != nil {
		t.Fatalf("getting user: %v", err)
	}
	if user.Role != farm.RoleWorker || user.Registered {
		t.Fatalf("unexpected user after role pick: %+v", user)
	}
	if state := mustState(t, st, u1); state.State != farm.StateWorkerRegName {
		t.Fatalf("expected reg name, got %s", state.State)
	}

	say(bot, u1, "Jane")
	user, _ = st.GetUser(ctx, u1)
	if user.Profile.Name != "Jane" {
		t.Fatalf("expected name Jane, got %q", user.Profile.Name)
	}
	if state := mustState(t, st, u1); state.State != farm.StateWorkerRegLocation {
		t.Fatalf("expected reg location, got %s", state.State)
	}

	say(bot, u1, "Durham")
	user, _ = st.GetUser(ctx, u1)
	if user.Profile.Location != "Durham" {
		t.Fatalf("expected location Durham, got %q", user.Profile.Location)
	}
	if state := mustState(t, st, u1); state.State != farm.StateWorkerRegID {
		t.Fatalf("expected reg id, got %s", state.State)
	}

	// A bare text message in the ID step re-prompts without moving on.
	reply = say(bot, u1, "here you go")
	if !strings.Contains(reply, "photo of your ID") {
		t.Fatalf("expected id re-prompt, got %q", reply)
	}
	if state := mustState(t, st, u1); state.State != farm.StateWorkerRegID {
		t.Fatalf("state moved without attachment: %s", state.State)
	}

	bot.HandleMessage(ctx, Incoming{From: u1, Attachment: "https://cdn.example/id.jpg"})
	user, _ = st.GetUser(ctx, u1)
	if !user.Profile.IDVerified || !user.Registered {
		t.Fatalf("expected verified registered user, got %+v", user)
	}
	if state := mustState(t, st, u1); state.State != farm.StateWorkerPrefWorkType {
		t.Fatalf("expected pref work type, got %s", state.State)
	}
}

func TestRoleSelectionRejectsOtherInput(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110002"

	say(bot, u, "Hello")
	reply := say(bot, u, "banana")
	if !strings.Contains(reply, "1") || !strings.Contains(reply, "2") {
		t.Fatalf("expected role retry naming options, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateAwaitingRole {
		t.Fatalf("state should not move, got %s", state.State)
	}
}

// failingJobsStore wraps a working store but errors on job listings.
type failingJobsStore struct {
	store.Store
	err error
}

func (f *failingJobsStore) ListOpenJobs(context.Context) ([]*farm.Job, error) {
	return nil, f.err
}

func TestMenuSelectionStoreFailureFallsBack(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110018"
	registerWorker(t, bot, u)

	broken := New(Deps{
		Store:  &failingJobsStore{Store: st, err: errors.New("data dir unreadable")},
		Engine: matching.NewEngine(nil, nil),
	})

	reply := say(broken, u, "1")
	if !strings.Contains(reply, "didn't understand") {
		t.Fatalf("expected fallback reply on store failure, got %q", reply)
	}
	mustNoState(t, st, u)
}

func TestStableMenuIsIdempotent(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110003"
	registerWorker(t, bot, u)

	first := say(bot, u, "menu")
	second := say(bot, u, "menu")
	if first != second {
		t.Fatalf("menu reply changed between calls:\n%q\n%q", first, second)
	}
	if !strings.Contains(first, "Worker Menu") {
		t.Fatalf("expected worker menu, got %q", first)
	}
	mustNoState(t, st, u)
}

func TestPreferenceCompletionShowsRecommendations(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: "o1", FarmName: "Blue Ridge"})
	seedJob(t, st, &farm.Job{WorkType: "Planting", PayRate: 17, OwnerID: "o1", FarmName: "Blue Ridge"})

	const u = "whatsapp:+15551110004"
	say(bot, u, "Hello")
	say(bot, u, "1")
	say(bot, u, "Jane")
	say(bot, u, "Durham")
	bot.HandleMessage(context.Background(), Incoming{From: u, Attachment: "ref"})
	say(bot, u, "1,2")
	say(bot, u, "2")

	reply := say(bot, u, "1")
	if !strings.Contains(reply, "Profile Complete") {
		t.Fatalf("expected profile complete header, got %q", reply)
	}
	if !strings.Contains(reply, "2 job match(es)") {
		t.Fatalf("expected 2 matches, got %q", reply)
	}

	user, _ := st.GetUser(context.Background(), u)
	if user.Profile.WorkTypes != "Harvesting, Planting" {
		t.Fatalf("unexpected work types: %q", user.Profile.WorkTypes)
	}
	if user.Profile.MaxDistance != 25 {
		t.Fatalf("expected 25 miles, got %d", user.Profile.MaxDistance)
	}
	if user.Profile.HoursPreference != "Full-time" {
		t.Fatalf("unexpected hours preference: %q", user.Profile.HoursPreference)
	}

	if state := mustState(t, st, u); state.State != farm.StateSelectingFromRecs {
		t.Fatalf("expected selection state, got %s", state.State)
	}
}

func TestInvalidPreferenceInputsDoNotTransition(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110005"
	say(bot, u, "Hello")
	say(bot, u, "1")
	say(bot, u, "Jane")
	say(bot, u, "Durham")
	bot.HandleMessage(context.Background(), Incoming{From: u, Attachment: "ref"})

	// Only invalid codes: dropped, so the set is empty and we re-prompt.
	reply := say(bot, u, "9,42")
	if !strings.Contains(reply, "valid options") {
		t.Fatalf("expected work type retry, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateWorkerPrefWorkType {
		t.Fatalf("state moved on invalid input: %s", state.State)
	}

	say(bot, u, "1")
	reply = say(bot, u, "9")
	if !strings.Contains(reply, "valid option") {
		t.Fatalf("expected distance retry, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateWorkerPrefLocation {
		t.Fatalf("state moved on invalid distance: %s", state.State)
	}
}

func TestEscapeHatchFromReviewStates(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()
	const u = "whatsapp:+15551110006"
	registerWorker(t, bot, u)

	for _, state := range []farm.StateName{
		farm.StateSelectingFromRecs,
		farm.StateReviewingRec,
		farm.StateJobDetailsView,
	} {
		if err := st.SetState(ctx, u, state, &farm.StateData{Jobs: []string{"J1"}, JobID: "J1"}); err != nil {
			t.Fatalf("setting state: %v", err)
		}
		reply := say(bot, u, "menu")
		if !strings.Contains(reply, "Worker Menu") {
			t.Fatalf("escape from %s: expected menu, got %q", state, reply)
		}
		mustNoState(t, st, u)
	}
}

func TestApplyCreatesMatchAndNotifiesOwner(t *testing.T) {
	t.Parallel()
	bot, st, rec := newTestBot(t, false)
	ctx := context.Background()

	const owner = "whatsapp:+15552220001"
	if err := st.CreateUser(ctx, &farm.User{ID: owner, Role: farm.RoleOwner, Registered: true}); err != nil {
		t.Fatalf("creating owner: %v", err)
	}
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: owner, FarmName: "Blue Ridge", Location: "Durham"})
	seedJob(t, st, &farm.Job{WorkType: "Planting", PayRate: 17, OwnerID: owner, FarmName: "Blue Ridge", Location: "Durham"})

	const u = "whatsapp:+15551110007"
	registerWorker(t, bot, u)

	say(bot, u, "1") // browse -> list
	if state := mustState(t, st, u); state.State != farm.StateSelectingFromRecs {
		t.Fatalf("expected selection state, got %s", state.State)
	}

	reply := say(bot, u, "1") // pick top job
	if !strings.Contains(reply, "apply for this job") {
		t.Fatalf("expected apply question, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateJobDetailsView {
		t.Fatalf("expected details view, got %s", state.State)
	}

	reply = say(bot, u, "1") // confirm
	if !strings.Contains(reply, "Application Submitted") {
		t.Fatalf("expected confirmation, got %q", reply)
	}
	mustNoState(t, st, u)

	matches, err := st.ListMatchesByWorker(ctx, u)
	if err != nil {
		t.Fatalf("listing matches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Status != farm.MatchAccepted {
		t.Fatalf("expected accepted, got %s", matches[0].Status)
	}

	sent := rec.all()
	if len(sent) != 1 || sent[0].To != owner {
		t.Fatalf("expected one owner notification, got %+v", sent)
	}
	if !strings.Contains(sent[0].Body, "New Job Application") {
		t.Fatalf("unexpected notification body: %q", sent[0].Body)
	}
}

func TestRepeatApplicationsAreNotDeduplicated(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()

	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: "o1", FarmName: "Blue Ridge"})
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 12, OwnerID: "o1", FarmName: "Blue Ridge"})

	const u = "whatsapp:+15551110008"
	registerWorker(t, bot, u)

	for i := 0; i < 2; i++ {
		say(bot, u, "1")
		say(bot, u, "1")
		say(bot, u, "1")
	}

	matches, err := st.ListMatchesByWorker(ctx, u)
	if err != nil {
		t.Fatalf("listing matches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 match records, got %d", len(matches))
	}
}

func TestWorkTypeUpdateRoundTrip(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110009"
	registerWorker(t, bot, u)

	say(bot, u, "2") // update preferences
	if state := mustState(t, st, u); state.State != farm.StateWorkerUpdateMenu {
		t.Fatalf("expected update menu, got %s", state.State)
	}

	say(bot, u, "1") // work types
	reply := say(bot, u, "Planting, Irrigation")
	if !strings.Contains(reply, "Planting, Irrigation") {
		t.Fatalf("expected echo of new value, got %q", reply)
	}
	mustNoState(t, st, u)

	user, _ := st.GetUser(context.Background(), u)
	if user.Profile.WorkTypes != "Planting, Irrigation" {
		t.Fatalf("free-text update must be stored verbatim, got %q", user.Profile.WorkTypes)
	}
}

func TestPayRateUpdateValidation(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110010"
	registerWorker(t, bot, u)

	say(bot, u, "2")
	say(bot, u, "3") // pay rate
	reply := say(bot, u, "lots")
	if !strings.Contains(reply, "valid number") {
		t.Fatalf("expected parse error message, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateWorkerUpdatePayRate {
		t.Fatalf("state moved on bad input: %s", state.State)
	}

	say(bot, u, "18.5")
	user, _ := st.GetUser(context.Background(), u)
	if user.Profile.MinPayRate != 18.5 {
		t.Fatalf("expected 18.5, got %v", user.Profile.MinPayRate)
	}
	mustNoState(t, st, u)
}

func TestUnknownStateFallsBack(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()
	const u = "whatsapp:+15551110011"
	registerWorker(t, bot, u)

	if err := st.SetState(ctx, u, farm.StateName("no_such_state"), nil); err != nil {
		t.Fatalf("setting state: %v", err)
	}
	reply := say(bot, u, "anything")
	if !strings.Contains(reply, "didn't understand") {
		t.Fatalf("expected fallback, got %q", reply)
	}
	// The unrecognized state is left untouched.
	if state := mustState(t, st, u); state.State != farm.StateName("no_such_state") {
		t.Fatalf("state mutated: %s", state.State)
	}
}

func TestOwnerRegistrationAndJobPosting(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()
	const o = "whatsapp:+15552220002"

	say(bot, o, "Hi")
	say(bot, o, "2")
	say(bot, o, "Sarah Johnson")
	say(bot, o, "Sunny Acres Farm")
	reply := say(bot, o, "Chapel Hill, NC")
	if !strings.Contains(reply, "Registration Complete") || !strings.Contains(reply, "Farm Owner Menu") {
		t.Fatalf("expected completion plus menu, got %q", reply)
	}

	owner, _ := st.GetUser(ctx, o)
	if owner.Role != farm.RoleOwner || !owner.Registered || owner.Profile.FarmName != "Sunny Acres Farm" {
		t.Fatalf("unexpected owner record: %+v", owner)
	}
	mustNoState(t, st, o)

	say(bot, o, "1") // post a job
	say(bot, o, "Tomato Harvesting")
	say(bot, o, "5")
	say(bot, o, "6:00 AM - 2:00 PM")
	say(bot, o, "2") // per day
	say(bot, o, "120")
	say(bot, o, "Green Valley, Sacramento")
	reply = say(bot, o, "1") // transport provided -> meeting point asked
	if !strings.Contains(reply, "meet for pickup") {
		t.Fatalf("expected meeting point prompt, got %q", reply)
	}
	say(bot, o, "Town Square, 5:30 AM")
	reply = say(bot, o, "Bring gloves")
	if !strings.Contains(reply, "Job Posted Successfully") {
		t.Fatalf("expected posted confirmation, got %q", reply)
	}
	mustNoState(t, st, o)

	jobs, err := st.ListJobsByOwner(ctx, o)
	if err != nil {
		t.Fatalf("listing jobs: %v", err)
	}
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	job := jobs[0]
	if job.WorkType != "Tomato Harvesting" || job.WorkersNeeded != 5 {
		t.Fatalf("unexpected job: %+v", job)
	}
	if job.PaymentType != farm.PayPerDay || job.PaymentAmount != 120 {
		t.Fatalf("unexpected payment: %+v", job)
	}
	if job.MeetingPoint != "Town Square, 5:30 AM" || job.Description != "Bring gloves" {
		t.Fatalf("unexpected details: %+v", job)
	}
	if job.Status != farm.JobOpen || job.FarmName != "Sunny Acres Farm" {
		t.Fatalf("unexpected status or farm: %+v", job)
	}
}

func TestJobPostingSkipsMeetingPointWithoutTransport(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const o = "whatsapp:+15552220003"

	say(bot, o, "Hi")
	say(bot, o, "2")
	say(bot, o, "Sam")
	say(bot, o, "Hill Farm")
	say(bot, o, "Raleigh")

	say(bot, o, "1")
	say(bot, o, "Weeding")
	say(bot, o, "3")
	say(bot, o, "mornings")
	say(bot, o, "1") // per hour
	say(bot, o, "18")
	say(bot, o, "Raleigh")
	reply := say(bot, o, "2") // no transport
	if !strings.Contains(reply, "additional details") {
		t.Fatalf("expected description prompt, got %q", reply)
	}
	say(bot, o, "skip")

	jobs, _ := st.ListJobsByOwner(context.Background(), o)
	if len(jobs) != 1 {
		t.Fatalf("expected 1 job, got %d", len(jobs))
	}
	if jobs[0].MeetingPoint != "" || jobs[0].Description != "" {
		t.Fatalf("expected empty meeting point and description, got %+v", jobs[0])
	}
	if jobs[0].Transportation != "Not provided" {
		t.Fatalf("unexpected transportation: %q", jobs[0].Transportation)
	}
}

func TestSingleMatchDirectAcceptDecline(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: "o1", FarmName: "Blue Ridge"})

	const u = "whatsapp:+15551110012"
	registerWorker(t, bot, u)

	say(bot, u, "1")
	if state := mustState(t, st, u); state.State != farm.StateViewingJobs {
		t.Fatalf("expected single-job view, got %s", state.State)
	}

	reply := say(bot, u, "1")
	if !strings.Contains(reply, "Job Details") {
		t.Fatalf("expected job card, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateJobAction {
		t.Fatalf("expected job action, got %s", state.State)
	}

	reply = say(bot, u, "2")
	if !strings.Contains(reply, "No problem") {
		t.Fatalf("expected decline acknowledgement, got %q", reply)
	}
	mustNoState(t, st, u)

	matches, _ := st.ListMatchesByWorker(context.Background(), u)
	if len(matches) != 0 {
		t.Fatalf("decline must not create matches, got %d", len(matches))
	}
}

func TestSequentialReviewWalk(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, true)
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: "o1", FarmName: "A"})
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 12, OwnerID: "o1", FarmName: "B"})

	const u = "whatsapp:+15551110013"
	registerWorker(t, bot, u)

	reply := say(bot, u, "1")
	if !strings.Contains(reply, "Job 1 of 2") {
		t.Fatalf("expected first review card, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateReviewingRec || state.Data.Cursor != 0 {
		t.Fatalf("unexpected review state: %+v", state)
	}

	reply = say(bot, u, "2") // skip
	if !strings.Contains(reply, "Job 2 of 2") {
		t.Fatalf("expected second review card, got %q", reply)
	}

	reply = say(bot, u, "2") // skip past the end
	if !strings.Contains(reply, "No more job matches") {
		t.Fatalf("expected end of review, got %q", reply)
	}
	mustNoState(t, st, u)
}

func TestChatRelay(t *testing.T) {
	t.Parallel()
	bot, st, rec := newTestBot(t, false)
	ctx := context.Background()

	const owner = "whatsapp:+15552220004"
	if err := st.CreateUser(ctx, &farm.User{ID: owner, Role: farm.RoleOwner, Registered: true}); err != nil {
		t.Fatalf("creating owner: %v", err)
	}
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: owner, FarmName: "Blue Ridge"})

	const u = "whatsapp:+15551110014"
	registerWorker(t, bot, u)

	// Apply so there is someone to chat with.
	say(bot, u, "1")
	say(bot, u, "1")
	say(bot, u, "1")

	reply := say(bot, u, "4")
	if !strings.Contains(reply, "Chat Started") {
		t.Fatalf("expected chat start, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateChatting || state.Data.With != owner {
		t.Fatalf("unexpected chat state: %+v", state)
	}

	before := len(rec.all())
	reply = say(bot, u, "Is the job still available?")
	if !strings.Contains(reply, "Message sent") {
		t.Fatalf("expected send confirmation, got %q", reply)
	}
	sent := rec.all()
	if len(sent) != before+1 {
		t.Fatalf("expected one relayed message, got %d new", len(sent)-before)
	}
	last := sent[len(sent)-1]
	if last.To != owner || !strings.Contains(last.Body, "Is the job still available?") {
		t.Fatalf("unexpected relay: %+v", last)
	}

	reply = say(bot, u, "endchat")
	if !strings.Contains(reply, "Chat ended") {
		t.Fatalf("expected chat end, got %q", reply)
	}
	mustNoState(t, st, u)
}

func TestWorkerChatPairsWithMostRecentApplication(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()

	const ownerA = "whatsapp:+15552220005"
	const ownerB = "whatsapp:+15552220006"
	for _, owner := range []string{ownerA, ownerB} {
		if err := st.CreateUser(ctx, &farm.User{ID: owner, Role: farm.RoleOwner, Registered: true}); err != nil {
			t.Fatalf("creating owner: %v", err)
		}
	}
	jobA := seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: ownerA, FarmName: "Blue Ridge"})
	jobB := seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 14, OwnerID: ownerB, FarmName: "Green Acres"})

	const u = "whatsapp:+15551110019"
	registerWorker(t, bot, u)

	// Two applications whose ID order disagrees with their time order:
	// MATCH_10 sorts before MATCH_2 lexicographically, but the one to
	// ownerB is newer and must win.
	base := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	older := &farm.Match{ID: "MATCH_2_20250601120000", JobID: jobA, WorkerID: u, Status: farm.MatchAccepted, CreatedAt: base}
	newer := &farm.Match{ID: "MATCH_10_20250602120000", JobID: jobB, WorkerID: u, Status: farm.MatchAccepted, CreatedAt: base.Add(24 * time.Hour)}
	for _, match := range []*farm.Match{older, newer} {
		if _, err := st.CreateMatch(ctx, match); err != nil {
			t.Fatalf("creating match: %v", err)
		}
	}

	reply := say(bot, u, "4")
	if !strings.Contains(reply, "Green Acres") {
		t.Fatalf("expected chat with the newer application's farm, got %q", reply)
	}
	if state := mustState(t, st, u); state.Data.With != ownerB {
		t.Fatalf("expected chat partner %s, got %s", ownerB, state.Data.With)
	}
}

func TestChatForwardsMenuVerbatim(t *testing.T) {
	t.Parallel()
	bot, st, rec := newTestBot(t, false)
	ctx := context.Background()

	const owner = "whatsapp:+15552220007"
	if err := st.CreateUser(ctx, &farm.User{ID: owner, Role: farm.RoleOwner, Registered: true}); err != nil {
		t.Fatalf("creating owner: %v", err)
	}
	seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: owner, FarmName: "Blue Ridge"})

	const u = "whatsapp:+15551110020"
	registerWorker(t, bot, u)
	say(bot, u, "1")
	say(bot, u, "1")
	say(bot, u, "1")
	say(bot, u, "4")

	// "menu" is an ordinary message inside a chat; only "endchat" leaves.
	before := len(rec.all())
	reply := say(bot, u, "menu")
	if !strings.Contains(reply, "Message sent") {
		t.Fatalf("expected relay confirmation, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateChatting || state.Data.With != owner {
		t.Fatalf("chat must survive a 'menu' message, got %+v", state)
	}
	sent := rec.all()
	if len(sent) != before+1 {
		t.Fatalf("expected one relayed message, got %d new", len(sent)-before)
	}
	if last := sent[len(sent)-1]; last.To != owner || !strings.Contains(last.Body, "menu") {
		t.Fatalf("unexpected relay: %+v", last)
	}
}

func TestLanguageSwitchPersists(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110015"
	registerWorker(t, bot, u)

	reply := say(bot, u, "español")
	if !strings.Contains(reply, "Idioma cambiado") {
		t.Fatalf("expected Spanish confirmation, got %q", reply)
	}
	if !strings.Contains(reply, "Menú del Trabajador") {
		t.Fatalf("expected Spanish menu, got %q", reply)
	}

	user, _ := st.GetUser(context.Background(), u)
	if user.Profile.Language != "es" {
		t.Fatalf("expected stored language es, got %q", user.Profile.Language)
	}

	// Subsequent replies use the stored language.
	reply = say(bot, u, "menu")
	if !strings.Contains(reply, "Menú del Trabajador") {
		t.Fatalf("expected Spanish menu on follow-up, got %q", reply)
	}
}

func TestLanguageSwitchMidFlowKeepsCurrentStep(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110021"
	registerWorker(t, bot, u)

	say(bot, u, "2")
	if state := mustState(t, st, u); state.State != farm.StateWorkerUpdateMenu {
		t.Fatalf("expected update menu, got %s", state.State)
	}

	// Switching language mid-flow confirms without showing a menu; the
	// active step stays where it was.
	reply := say(bot, u, "español")
	if !strings.Contains(reply, "Idioma cambiado") {
		t.Fatalf("expected Spanish confirmation, got %q", reply)
	}
	if strings.Contains(reply, "Menú del Trabajador") {
		t.Fatalf("mid-flow switch must not show the menu, got %q", reply)
	}
	if state := mustState(t, st, u); state.State != farm.StateWorkerUpdateMenu {
		t.Fatalf("expected update menu to survive the switch, got %s", state.State)
	}

	user, _ := st.GetUser(context.Background(), u)
	if user.Profile.Language != "es" {
		t.Fatalf("expected stored language es, got %q", user.Profile.Language)
	}
}

func TestSpanishDetectionOnFirstContact(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	const u = "whatsapp:+15551110016"

	reply := say(bot, u, "Hola, busco trabajo")
	if !strings.Contains(reply, "Bienvenido") {
		t.Fatalf("expected Spanish welcome, got %q", reply)
	}
	user, _ := st.GetUser(context.Background(), u)
	if user.Profile.Language != "es" {
		t.Fatalf("expected detected language es, got %q", user.Profile.Language)
	}
}

func TestOwnerListingsAndApplicants(t *testing.T) {
	t.Parallel()
	bot, st, _ := newTestBot(t, false)
	ctx := context.Background()

	const o = "whatsapp:+15552220005"
	say(bot, o, "Hi")
	say(bot, o, "2")
	say(bot, o, "Sarah")
	say(bot, o, "Sunny Acres")
	say(bot, o, "Chapel Hill")

	reply := say(bot, o, "2")
	if !strings.Contains(reply, "haven't posted any jobs") {
		t.Fatalf("expected empty listing, got %q", reply)
	}

	jobID := seedJob(t, st, &farm.Job{WorkType: "Harvesting", PayRate: 15, OwnerID: o, FarmName: "Sunny Acres"})

	const u = "whatsapp:+15551110017"
	registerWorker(t, bot, u)
	say(bot, u, "1")
	say(bot, u, "1")
	say(bot, u, "1") // apply

	reply = say(bot, o, "2")
	if !strings.Contains(reply, "Harvesting") || !strings.Contains(reply, "Applications: 1") {
		t.Fatalf("expected listing with one application, got %q", reply)
	}

	reply = say(bot, o, "3")
	if !strings.Contains(reply, "Jane") {
		t.Fatalf("expected applicant name, got %q", reply)
	}

	matches, _ := st.ListMatchesByJob(ctx, jobID)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match for job, got %d", len(matches))
	}
}
