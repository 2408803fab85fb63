// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stylegenie/stylegenie-tui/internal/collection"
	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
	"github.com/stylegenie/stylegenie-tui/internal/genai"
	"github.com/stylegenie/stylegenie-tui/internal/history"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/payment"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
)

// =============================================================================
// FIXTURES
// =============================================================================

type fixture struct {
	ctrl  *Controller
	store *storage.MemStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	engine := entitlement.NewEngineWithClock(func() time.Time { return now })
	store := storage.NewMemStore()
	usageRepo := storage.NewUsageRepo(store)
	usage, err := usageRepo.LoadOrInit(engine, now)
	if err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	saved, err := collection.Load(storage.NewCollectionRepo(store))
	if err != nil {
		t.Fatalf("collection.Load: %v", err)
	}
	return &fixture{
		ctrl:  New(engine, usage, usageRepo, saved),
		store: store,
	}
}

func analysisFixture() *model.AnalysisResult {
	return &model.AnalysisResult{
		FaceShape: "oval",
		SkinTone:  "warm",
		HairStyles: []model.StyleItem{
			{Name: "Bob Cut", Description: "chin-length bob"},
			{Name: "Pixie", Description: "cropped pixie"},
		},
		Outfits: []model.StyleItem{
			{Name: "Linen Suit", Description: "beige linen suit"},
		},
	}
}

// toDashboard runs the upload and analysis flow to land on the dashboard.
func (f *fixture) toDashboard(t *testing.T) {
	t.Helper()
	eff := f.ctrl.UploadImage("photo-b64")
	analyze, ok := eff.(AnalyzeEffect)
	if !ok {
		t.Fatalf("upload effect = %T, want AnalyzeEffect", eff)
	}
	f.ctrl.CompleteAnalysis(analyze.RequestID, analysisFixture(), nil)
	if f.ctrl.State() != StateDashboard {
		t.Fatalf("state = %v, want dashboard", f.ctrl.State())
	}
}

func (f *fixture) persistedUsage(t *testing.T) entitlement.UserUsage {
	t.Helper()
	data, found, err := f.store.Load(storage.UsageDocument)
	if err != nil || !found {
		t.Fatalf("usage document missing: found=%v err=%v", found, err)
	}
	var u entitlement.UserUsage
	if err := json.Unmarshal(data, &u); err != nil {
		t.Fatalf("unmarshal usage: %v", err)
	}
	return u
}

// =============================================================================
// UPLOAD AND ANALYSIS
// =============================================================================

func TestUploadImage_StartsAnalysis(t *testing.T) {
	f := newFixture(t)

	eff := f.ctrl.UploadImage("photo-b64")
	analyze, ok := eff.(AnalyzeEffect)
	if !ok {
		t.Fatalf("effect = %T, want AnalyzeEffect", eff)
	}
	if analyze.Mode != genai.ModeInitial || analyze.Image != "photo-b64" {
		t.Errorf("effect = %+v", analyze)
	}
	if f.ctrl.State() != StateAnalyzing {
		t.Errorf("state = %v, want analyzing", f.ctrl.State())
	}

	// The busy state must block a second trigger.
	if eff := f.ctrl.UploadImage("other"); eff != nil {
		t.Errorf("re-entrant upload returned %T, want nil", eff)
	}
}

func TestCompleteAnalysis_FailureReturnsToUpload(t *testing.T) {
	f := newFixture(t)
	eff := f.ctrl.UploadImage("photo-b64").(AnalyzeEffect)

	f.ctrl.CompleteAnalysis(eff.RequestID, nil, errors.New("analysis boom"))

	if f.ctrl.State() != StateUpload {
		t.Errorf("state = %v, want upload", f.ctrl.State())
	}
	if f.ctrl.Notice() == "" {
		t.Error("failure should surface a notice")
	}
	if f.ctrl.Analysis() != nil {
		t.Error("failed analysis should not be stored")
	}
}

func TestCompleteAnalysis_StaleIDIgnored(t *testing.T) {
	f := newFixture(t)
	eff := f.ctrl.UploadImage("photo-b64").(AnalyzeEffect)

	f.ctrl.CompleteAnalysis(eff.RequestID+99, analysisFixture(), nil)

	if f.ctrl.State() != StateAnalyzing {
		t.Errorf("stale completion should be dropped, state = %v", f.ctrl.State())
	}
	if f.ctrl.Analysis() != nil {
		t.Error("stale completion should not store a result")
	}
}

func TestLoadMore_AppendsToActiveList(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	eff := f.ctrl.LoadMore()
	analyze, ok := eff.(AnalyzeEffect)
	if !ok || analyze.Mode != genai.ModeMoreHair {
		t.Fatalf("effect = %+v, want more_hair AnalyzeEffect", eff)
	}

	more := &model.AnalysisResult{HairStyles: []model.StyleItem{{Name: "Shag", Description: "layered shag"}}}
	f.ctrl.CompleteAnalysis(analyze.RequestID, more, nil)

	if got := len(f.ctrl.Analysis().HairStyles); got != 3 {
		t.Errorf("hair styles = %d, want 3", got)
	}
	if got := len(f.ctrl.Analysis().Outfits); got != 1 {
		t.Errorf("outfits = %d, want 1 (unchanged)", got)
	}
}

func TestLoadMore_AppliesActiveColorFilter(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SetColorFilter("#D32F2F")

	eff := f.ctrl.LoadMore().(AnalyzeEffect)
	more := &model.AnalysisResult{HairStyles: []model.StyleItem{{Name: "Shag", Description: "layered shag"}}}
	f.ctrl.CompleteAnalysis(eff.RequestID, more, nil)

	styles := f.ctrl.Analysis().HairStyles
	if styles[len(styles)-1].SelectedColor != "#D32F2F" {
		t.Errorf("new styles should pick up the filter, got %q", styles[len(styles)-1].SelectedColor)
	}
}

func TestLoadMore_MixRefreshesBothOrNeither(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SelectTab(TabMix)

	eff := f.ctrl.LoadMore()
	pair, ok := eff.(LoadMorePairEffect)
	if !ok {
		t.Fatalf("effect = %T, want LoadMorePairEffect", eff)
	}

	// Partial failure keeps the lists exactly as they were.
	f.ctrl.CompleteLoadMorePair(pair.RequestID, analysisFixture(), nil, errors.New("fashion call failed"))
	if got := len(f.ctrl.Analysis().HairStyles); got != 2 {
		t.Errorf("hair styles after partial failure = %d, want 2", got)
	}
	if f.ctrl.State() != StateDashboard || f.ctrl.Notice() == "" {
		t.Errorf("partial failure should return to dashboard with a notice")
	}

	f.ctrl.ClearNotice()
	pair = f.ctrl.LoadMore().(LoadMorePairEffect)
	hair := &model.AnalysisResult{HairStyles: []model.StyleItem{{Name: "Shag"}}}
	fashion := &model.AnalysisResult{Outfits: []model.StyleItem{{Name: "Denim Jacket"}}}
	f.ctrl.CompleteLoadMorePair(pair.RequestID, hair, fashion, nil)

	if got := len(f.ctrl.Analysis().HairStyles); got != 3 {
		t.Errorf("hair styles = %d, want 3", got)
	}
	if got := len(f.ctrl.Analysis().Outfits); got != 2 {
		t.Errorf("outfits = %d, want 2", got)
	}
}

func TestSubmitSearch_CustomReplacesAnalysis(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	eff := f.ctrl.SubmitSearch("boho chic")
	analyze, ok := eff.(AnalyzeEffect)
	if !ok || analyze.Mode != genai.ModeCustom || analyze.Query != "boho chic" {
		t.Fatalf("effect = %+v, want custom AnalyzeEffect", eff)
	}

	result := &model.AnalysisResult{HairStyles: []model.StyleItem{{Name: "Boho Waves"}}}
	f.ctrl.CompleteAnalysis(analyze.RequestID, result, nil)

	if got := len(f.ctrl.Analysis().HairStyles); got != 1 {
		t.Errorf("custom search should replace the analysis, hair styles = %d", got)
	}
}

// =============================================================================
// GATED TRY-ON
// =============================================================================

func TestTryOn_GatedAndConsumesOnSuccessOnly(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	item := model.StyleItem{Name: "Bob Cut", Description: "chin-length bob", SelectedColor: "Auburn"}
	eff := f.ctrl.TryOn(item)
	vis, ok := eff.(VisualizeEffect)
	if !ok {
		t.Fatalf("effect = %T, want VisualizeEffect", eff)
	}
	if vis.Kind != model.KindHair {
		t.Errorf("kind = %v, want hair", vis.Kind)
	}
	if vis.Description != "chin-length bob. The hair color should be Auburn." {
		t.Errorf("description = %q", vis.Description)
	}
	if f.ctrl.State() != StateGeneratingImage {
		t.Errorf("state = %v, want generating", f.ctrl.State())
	}

	// Failure returns to the dashboard without spending a credit.
	f.ctrl.CompleteVisualize(vis.RequestID, "", "", errors.New("generation boom"))
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard", f.ctrl.State())
	}
	if f.ctrl.Usage().DailyCount != 0 {
		t.Errorf("failed generation consumed a credit: count = %d", f.ctrl.Usage().DailyCount)
	}

	f.ctrl.ClearNotice()
	vis = f.ctrl.TryOn(item).(VisualizeEffect)
	f.ctrl.CompleteVisualize(vis.RequestID, "data:image/jpeg;base64,abc", "", nil)

	if f.ctrl.State() != StateShowingResult {
		t.Errorf("state = %v, want result", f.ctrl.State())
	}
	if f.ctrl.Usage().DailyCount != 1 {
		t.Errorf("count = %d, want 1", f.ctrl.Usage().DailyCount)
	}
	if f.persistedUsage(t).DailyCount != 1 {
		t.Error("consumed credit should be persisted")
	}
	look, ok := f.ctrl.CurrentResult()
	if !ok || look.StyleName != "Bob Cut" || look.Kind != model.KindHair {
		t.Errorf("current result = %+v", look)
	}
}

func TestTryOn_BlockedAtQuotaOpensPlans(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	// Burn the whole free quota.
	for i := 0; i < 10; i++ {
		vis := f.ctrl.TryOn(model.StyleItem{Name: "Bob Cut"}).(VisualizeEffect)
		f.ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)
		f.ctrl.CloseResult()
	}

	eff := f.ctrl.TryOn(model.StyleItem{Name: "Pixie"})
	if eff != nil {
		t.Fatalf("blocked try-on returned %T, want nil", eff)
	}
	if !f.ctrl.PlansOpen() {
		t.Error("blocked try-on should open the upgrade prompt")
	}
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard (unchanged)", f.ctrl.State())
	}
	if f.ctrl.Usage().DailyCount != 10 {
		t.Errorf("count = %d, want 10", f.ctrl.Usage().DailyCount)
	}
}

// A session left open across midnight gets the new day's quota on its next
// gated trigger, without a restart.
func TestTryOn_RollsOverQuotaPastMidnight(t *testing.T) {
	now := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	engine := entitlement.NewEngineWithClock(func() time.Time { return now })
	store := storage.NewMemStore()
	usageRepo := storage.NewUsageRepo(store)
	usage, err := usageRepo.LoadOrInit(engine, now)
	if err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	saved, err := collection.Load(storage.NewCollectionRepo(store))
	if err != nil {
		t.Fatalf("collection.Load: %v", err)
	}
	ctrl := New(engine, usage, usageRepo, saved)

	eff := ctrl.UploadImage("photo-b64")
	ctrl.CompleteAnalysis(eff.(AnalyzeEffect).RequestID, analysisFixture(), nil)

	for i := 0; i < 10; i++ {
		vis := ctrl.TryOn(model.StyleItem{Name: "Bob Cut"}).(VisualizeEffect)
		ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)
		ctrl.CloseResult()
	}
	if eff := ctrl.TryOn(model.StyleItem{Name: "Pixie"}); eff != nil {
		t.Fatalf("exhausted quota returned %T, want nil", eff)
	}
	ctrl.ClosePlans()

	now = now.Add(20 * time.Minute)

	eff = ctrl.TryOn(model.StyleItem{Name: "Pixie"})
	if _, ok := eff.(VisualizeEffect); !ok {
		t.Fatalf("post-rollover try-on = %T, want VisualizeEffect", eff)
	}
	u := ctrl.Usage()
	if u.DailyCount != 0 {
		t.Errorf("count = %d, want 0 after rollover", u.DailyCount)
	}
	if u.LastUsedDate != entitlement.DayKey(now) {
		t.Errorf("last used = %q, want %q", u.LastUsedDate, entitlement.DayKey(now))
	}
	if u.Tier != entitlement.TierFree {
		t.Errorf("tier = %q, want free (preserved)", u.Tier)
	}
}

func TestMixTryOn_IncompletePairRejected(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SelectMixOutfit(model.StyleItem{Name: "Linen Suit", Description: "beige linen suit"})

	eff, err := f.ctrl.MixTryOn()
	var pre *PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("err = %v, want PreconditionError", err)
	}
	if eff != nil {
		t.Errorf("incomplete mix returned an effect: %T", eff)
	}
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard", f.ctrl.State())
	}
}

func TestMixTryOn_BuildsCombinedDescription(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SelectMixHair(model.StyleItem{Name: "Bob Cut", Description: "chin-length bob", SelectedColor: "#3E2723"})
	f.ctrl.SelectMixOutfit(model.StyleItem{Name: "Linen Suit", Description: "beige linen suit"})

	eff, err := f.ctrl.MixTryOn()
	if err != nil {
		t.Fatalf("MixTryOn: %v", err)
	}
	vis := eff.(VisualizeEffect)
	want := "Hair: chin-length bob. The hair color should be exactly hex code #3E2723.. Outfit: beige linen suit."
	if vis.Description != want {
		t.Errorf("description = %q\nwant %q", vis.Description, want)
	}
	if vis.Kind != model.KindMix {
		t.Errorf("kind = %v, want mix", vis.Kind)
	}

	f.ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)
	look, _ := f.ctrl.CurrentResult()
	if look.StyleName != "Mix & Match Look" || len(look.Items) != 2 {
		t.Errorf("mix result = %+v", look)
	}
}

func TestSubmitSearch_LinkModeRunsGatedTryOn(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SelectTab(TabFashion)
	f.ctrl.SetSearchMode(SearchLink)

	eff := f.ctrl.SubmitSearch("https://shop.example/dress")
	link, ok := eff.(LinkTryOnEffect)
	if !ok {
		t.Fatalf("effect = %T, want LinkTryOnEffect", eff)
	}

	f.ctrl.CompleteVisualize(link.RequestID, "img", "emerald satin midi dress", nil)

	look, _ := f.ctrl.CurrentResult()
	if look.StyleName != "Linked Outfit" || look.Description != "emerald satin midi dress" {
		t.Errorf("linked result = %+v", look)
	}
	if f.ctrl.Usage().DailyCount != 1 {
		t.Errorf("count = %d, want 1", f.ctrl.Usage().DailyCount)
	}
}

// =============================================================================
// PREVIEWS
// =============================================================================

func TestPreview_SetsThumbnailWithoutBusyState(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	eff := f.ctrl.GeneratePreview(model.StyleItem{Name: "Bob Cut", Description: "chin-length bob"})
	prev, ok := eff.(PreviewEffect)
	if !ok {
		t.Fatalf("effect = %T, want PreviewEffect", eff)
	}
	if f.ctrl.State() != StateDashboard {
		t.Errorf("previews must not enter a busy state, got %v", f.ctrl.State())
	}

	f.ctrl.CompletePreview(prev.RequestID, "thumb-data", nil)
	if got := f.ctrl.Analysis().HairStyles[0].Thumbnail; got != "thumb-data" {
		t.Errorf("thumbnail = %q", got)
	}

	// A second completion for the same ID is dropped.
	f.ctrl.CompletePreview(prev.RequestID, "other", nil)
	if got := f.ctrl.Analysis().HairStyles[0].Thumbnail; got != "thumb-data" {
		t.Errorf("duplicate completion overwrote thumbnail: %q", got)
	}
}

func TestPreview_FreeOfQuota(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	prev := f.ctrl.GeneratePreview(model.StyleItem{Name: "Bob Cut"}).(PreviewEffect)
	f.ctrl.CompletePreview(prev.RequestID, "thumb", nil)

	if f.ctrl.Usage().DailyCount != 0 {
		t.Errorf("preview consumed a credit: count = %d", f.ctrl.Usage().DailyCount)
	}
}

// =============================================================================
// COLORS AND MIX SLOTS
// =============================================================================

func TestSetColor_RefreshesMixSlot(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SelectMixHair(model.StyleItem{Name: "Bob Cut", Description: "chin-length bob", Thumbnail: "old-thumb"})

	f.ctrl.SetColor("Bob Cut", "Silver")

	mix := f.ctrl.Mix()
	if mix.Hair.SelectedColor != "Silver" {
		t.Errorf("mix hair color = %q, want Silver", mix.Hair.SelectedColor)
	}
	if mix.Hair.Thumbnail != "" {
		t.Error("color change must clear the slot thumbnail")
	}
	if got := f.ctrl.Analysis().HairStyles[0].SelectedColor; got != "Silver" {
		t.Errorf("list color = %q, want Silver", got)
	}
}

func TestSetColor_StalesPreviewUntilRegenerated(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	eff := f.ctrl.GeneratePreview(f.ctrl.Analysis().HairStyles[0])
	first, ok := eff.(PreviewEffect)
	if !ok {
		t.Fatalf("effect = %T, want PreviewEffect", eff)
	}
	f.ctrl.CompletePreview(first.RequestID, "thumb-1", nil)
	if got := f.ctrl.Analysis().HairStyles[0].Thumbnail; got != "thumb-1" {
		t.Fatalf("thumbnail = %q, want thumb-1", got)
	}

	f.ctrl.SetColor("Bob Cut", "Silver")
	if got := f.ctrl.Analysis().HairStyles[0].Thumbnail; got != "" {
		t.Fatalf("recolor kept stale thumbnail %q", got)
	}

	// The next preview goes out fresh, with the color-qualified description.
	eff = f.ctrl.GeneratePreview(f.ctrl.Analysis().HairStyles[0])
	second, ok := eff.(PreviewEffect)
	if !ok {
		t.Fatalf("effect = %T, want PreviewEffect", eff)
	}
	if second.RequestID == first.RequestID {
		t.Error("regenerated preview reused the old request id")
	}
	if !strings.Contains(second.Description, "Silver") {
		t.Errorf("description = %q, want the selected color in it", second.Description)
	}
	f.ctrl.CompletePreview(second.RequestID, "thumb-2", nil)
	if got := f.ctrl.Analysis().HairStyles[0].Thumbnail; got != "thumb-2" {
		t.Errorf("thumbnail = %q, want thumb-2", got)
	}
}

// =============================================================================
// GROUNDING
// =============================================================================

func TestFindSalons_RequiresLocation(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	if eff := f.ctrl.FindSalons(); eff != nil {
		t.Fatalf("lookup without location returned %T, want nil", eff)
	}
	if f.ctrl.Notice() == "" {
		t.Error("missing location should surface a notice")
	}
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard (unchanged)", f.ctrl.State())
	}
}

func TestFindSalons_ReturnsToInitiatingState(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)
	f.ctrl.SetLocation(model.Coordinates{Latitude: 12.9, Longitude: 77.6})

	eff := f.ctrl.FindSalons()
	salons, ok := eff.(SalonSearchEffect)
	if !ok || salons.Coords.Latitude != 12.9 {
		t.Fatalf("effect = %+v", eff)
	}
	if f.ctrl.State() != StateAnalyzing {
		t.Errorf("state = %v, want analyzing", f.ctrl.State())
	}

	f.ctrl.CompleteGrounding(salons.RequestID, model.GroundingResult{Text: "Found 2 salons."})
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard", f.ctrl.State())
	}
	if f.ctrl.Grounding() == nil || f.ctrl.Grounding().Text != "Found 2 salons." {
		t.Errorf("grounding = %+v", f.ctrl.Grounding())
	}
}

func TestFindShopping_PassesItem(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	item := model.StyleItem{Name: "Linen Suit", SelectedColor: "White"}
	eff := f.ctrl.FindShopping(item)
	shop, ok := eff.(ShoppingSearchEffect)
	if !ok || shop.Item.Name != "Linen Suit" {
		t.Fatalf("effect = %+v", eff)
	}
	f.ctrl.CompleteGrounding(shop.RequestID, model.GroundingResult{Text: "Here are some shopping options found on the web:"})
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard", f.ctrl.State())
	}
}

// =============================================================================
// RESULTS AND COLLECTION
// =============================================================================

func TestResultNavigationAndClose(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	for _, name := range []string{"Bob Cut", "Pixie"} {
		vis := f.ctrl.TryOn(model.StyleItem{Name: name}).(VisualizeEffect)
		f.ctrl.CompleteVisualize(vis.RequestID, "img-"+name, "", nil)
		if name == "Bob Cut" {
			f.ctrl.CloseResult()
		}
	}

	look, _ := f.ctrl.CurrentResult()
	if look.StyleName != "Pixie" {
		t.Errorf("current = %q, want Pixie", look.StyleName)
	}

	f.ctrl.Navigate(history.Prev)
	look, _ = f.ctrl.CurrentResult()
	if look.StyleName != "Bob Cut" {
		t.Errorf("after prev = %q, want Bob Cut", look.StyleName)
	}

	f.ctrl.CloseResult()
	if f.ctrl.State() != StateDashboard {
		t.Errorf("close from history should return to dashboard, got %v", f.ctrl.State())
	}
}

func TestCollectionFlow(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	vis := f.ctrl.TryOn(model.StyleItem{Name: "Bob Cut"}).(VisualizeEffect)
	f.ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)

	f.ctrl.ToggleSaveCurrent()
	if f.ctrl.Collection().Len() != 1 {
		t.Fatalf("collection len = %d, want 1", f.ctrl.Collection().Len())
	}

	f.ctrl.CloseResult()
	f.ctrl.OpenCollection()
	if f.ctrl.State() != StateCollection {
		t.Fatalf("state = %v, want collection", f.ctrl.State())
	}

	f.ctrl.ViewCollectionItem(0)
	if f.ctrl.State() != StateShowingResult || f.ctrl.Source() != SourceCollection {
		t.Errorf("state = %v source = %v", f.ctrl.State(), f.ctrl.Source())
	}
	look, ok := f.ctrl.CurrentResult()
	if !ok || look.StyleName != "Bob Cut" {
		t.Errorf("collection result = %+v", look)
	}

	// Closing a collection-sourced result returns to the collection.
	f.ctrl.CloseResult()
	if f.ctrl.State() != StateCollection {
		t.Errorf("state = %v, want collection", f.ctrl.State())
	}

	f.ctrl.CloseCollection()
	if f.ctrl.State() != StateDashboard {
		t.Errorf("state = %v, want dashboard", f.ctrl.State())
	}
}

func TestToggleSaveCurrent_IsItsOwnInverse(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	vis := f.ctrl.TryOn(model.StyleItem{Name: "Bob Cut"}).(VisualizeEffect)
	f.ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)

	f.ctrl.ToggleSaveCurrent()
	f.ctrl.ToggleSaveCurrent()
	if f.ctrl.Collection().Len() != 0 {
		t.Errorf("double toggle should leave the collection empty, len = %d", f.ctrl.Collection().Len())
	}
}

// =============================================================================
// PURCHASES
// =============================================================================

func TestPurchase_DayPassUnblocksGate(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	for i := 0; i < 10; i++ {
		vis := f.ctrl.TryOn(model.StyleItem{Name: "Bob Cut"}).(VisualizeEffect)
		f.ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)
		f.ctrl.CloseResult()
	}
	f.ctrl.TryOn(model.StyleItem{Name: "Pixie"})
	if !f.ctrl.PlansOpen() {
		t.Fatal("quota exhaustion should open the upgrade prompt")
	}

	eff := f.ctrl.Purchase(payment.OptionDayPass)
	buy, ok := eff.(PurchaseEffect)
	if !ok {
		t.Fatalf("effect = %T, want PurchaseEffect", eff)
	}
	f.ctrl.CompletePurchase(buy.RequestID, &payment.Receipt{Option: payment.OptionDayPass, Message: "done"}, nil)

	if f.ctrl.PlansOpen() {
		t.Error("successful purchase should close the plan catalog")
	}
	if f.ctrl.Usage().ExtraDailyLimit != entitlement.TopUpAmount {
		t.Errorf("extra limit = %d, want %d", f.ctrl.Usage().ExtraDailyLimit, entitlement.TopUpAmount)
	}
	if f.persistedUsage(t).ExtraDailyLimit != entitlement.TopUpAmount {
		t.Error("top-up should be persisted")
	}

	if eff := f.ctrl.TryOn(model.StyleItem{Name: "Pixie"}); eff == nil {
		t.Error("try-on should pass the gate after a top-up")
	}
}

func TestPurchase_TierUpgrade(t *testing.T) {
	f := newFixture(t)

	buy := f.ctrl.Purchase(payment.OptionYearly).(PurchaseEffect)
	f.ctrl.CompletePurchase(buy.RequestID, &payment.Receipt{Option: payment.OptionYearly, Message: "done"}, nil)

	if f.ctrl.Usage().Tier != entitlement.TierYearly {
		t.Errorf("tier = %s, want yearly", f.ctrl.Usage().Tier)
	}
	if f.ctrl.Remaining() != 50 {
		t.Errorf("remaining = %d, want 50", f.ctrl.Remaining())
	}
}

// =============================================================================
// LIFECYCLE
// =============================================================================

func TestNewSession_KeepsCollectionAndUsage(t *testing.T) {
	f := newFixture(t)
	f.toDashboard(t)

	vis := f.ctrl.TryOn(model.StyleItem{Name: "Bob Cut"}).(VisualizeEffect)
	f.ctrl.CompleteVisualize(vis.RequestID, "img", "", nil)
	f.ctrl.ToggleSaveCurrent()
	f.ctrl.CloseResult()

	f.ctrl.NewSession()

	if f.ctrl.State() != StateUpload {
		t.Errorf("state = %v, want upload", f.ctrl.State())
	}
	if f.ctrl.Analysis() != nil || f.ctrl.Image() != "" {
		t.Error("session inputs should be cleared")
	}
	if f.ctrl.Ledger().Len() != 0 {
		t.Errorf("ledger len = %d, want 0", f.ctrl.Ledger().Len())
	}
	if f.ctrl.Collection().Len() != 1 {
		t.Errorf("collection must survive a new session, len = %d", f.ctrl.Collection().Len())
	}
	if f.ctrl.Usage().DailyCount != 1 {
		t.Errorf("usage must survive a new session, count = %d", f.ctrl.Usage().DailyCount)
	}
}
