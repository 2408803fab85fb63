// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package session

import (
	"fmt"
	"os"

	"github.com/stylegenie/stylegenie-tui/internal/collection"
	"github.com/stylegenie/stylegenie-tui/internal/entitlement"
	"github.com/stylegenie/stylegenie-tui/internal/genai"
	"github.com/stylegenie/stylegenie-tui/internal/history"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/payment"
	"github.com/stylegenie/stylegenie-tui/internal/storage"
)

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller owns all session state and decides every transition. It holds
// the screen state, the active analysis, the result ledger, the saved
// collection, and the usage record, and gates credit-consuming triggers
// through the entitlement engine.
type Controller struct {
	state       State
	returnState State

	image    string
	analysis *model.AnalysisResult

	activeTab   Tab
	colorFilter string
	searchMode  SearchMode

	mix model.MixSelection

	ledger *history.Ledger
	saved  *collection.Store
	source ResultSource

	engine    *entitlement.Engine
	usage     entitlement.UserUsage
	usageRepo *storage.UsageRepo

	location *model.Coordinates

	grounding *model.GroundingResult
	notice    string
	loading   string
	plansOpen bool

	// Exclusive busy-state call tracking. seq hands out request IDs,
	// pendingID is the one completion the controller will accept.
	seq       uint64
	pendingID uint64
	pendingGen *pendingGeneration
	pendingMode genai.AnalysisMode

	// Previews run outside the busy states and may overlap.
	pendingPreviews map[uint64]string

	pendingPurchase uint64
}

// New creates a controller in the upload state. usage must already be
// reconciled for day rollover by the caller.
func New(engine *entitlement.Engine, usage entitlement.UserUsage, usageRepo *storage.UsageRepo, saved *collection.Store) *Controller {
	return &Controller{
		state:           StateUpload,
		returnState:     StateUpload,
		activeTab:       TabHair,
		searchMode:      SearchText,
		ledger:          history.NewLedger(),
		saved:           saved,
		engine:          engine,
		usage:           usage,
		usageRepo:       usageRepo,
		pendingPreviews: make(map[uint64]string),
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

func (c *Controller) State() State                     { return c.state }
func (c *Controller) Image() string                    { return c.image }
func (c *Controller) Analysis() *model.AnalysisResult  { return c.analysis }
func (c *Controller) ActiveTab() Tab                   { return c.activeTab }
func (c *Controller) ColorFilter() string              { return c.colorFilter }
func (c *Controller) SearchMode() SearchMode           { return c.searchMode }
func (c *Controller) Mix() model.MixSelection          { return c.mix }
func (c *Controller) Ledger() *history.Ledger          { return c.ledger }
func (c *Controller) Collection() *collection.Store    { return c.saved }
func (c *Controller) Source() ResultSource             { return c.source }
func (c *Controller) Usage() entitlement.UserUsage     { return c.usage }
func (c *Controller) Engine() *entitlement.Engine      { return c.engine }
func (c *Controller) Grounding() *model.GroundingResult { return c.grounding }
func (c *Controller) Notice() string                   { return c.notice }
func (c *Controller) LoadingMessage() string           { return c.loading }
func (c *Controller) PlansOpen() bool                  { return c.plansOpen }

// Remaining returns the credits left today.
func (c *Controller) Remaining() int {
	return c.engine.Remaining(c.usage)
}

// CurrentResult returns the look the result screen is showing, taken from
// the ledger or the collection depending on the result source.
func (c *Controller) CurrentResult() (model.HistoryItem, bool) {
	if c.source == SourceCollection {
		return c.saved.Current()
	}
	return c.ledger.Current()
}

// SetLocation records the device coordinates used for salon lookups.
func (c *Controller) SetLocation(coords model.Coordinates) {
	c.location = &coords
}

// ClearNotice dismisses the current user notice.
func (c *Controller) ClearNotice() { c.notice = "" }

// ClearGrounding dismisses the grounding links overlay.
func (c *Controller) ClearGrounding() { c.grounding = nil }

// ClosePlans dismisses the upgrade prompt.
func (c *Controller) ClosePlans() { c.plansOpen = false }

// OpenPlans shows the plan catalog.
func (c *Controller) OpenPlans() { c.plansOpen = true }

// SetSearchMode switches the dashboard search box interpretation.
func (c *Controller) SetSearchMode(mode SearchMode) { c.searchMode = mode }

// SelectTab switches the visible style list.
func (c *Controller) SelectTab(tab Tab) { c.activeTab = tab }

// =============================================================================
// CALL TRACKING
// =============================================================================

// begin enters a busy state and reserves the completion slot for one call.
// The prior visible state is remembered as the failure destination.
func (c *Controller) begin(busy State, loading string) uint64 {
	c.returnState = c.state
	c.state = busy
	c.loading = loading
	c.seq++
	c.pendingID = c.seq
	return c.pendingID
}

// settle validates a completion against the pending call. A false return
// means the completion is stale and must be dropped.
func (c *Controller) settle(id uint64) bool {
	if id == 0 || id != c.pendingID {
		return false
	}
	c.pendingID = 0
	c.pendingGen = nil
	c.loading = ""
	return true
}

// fail returns to the failure destination with a user notice.
func (c *Controller) fail(to State, notice string) {
	c.state = to
	c.notice = notice
}

// =============================================================================
// UPLOAD AND ANALYSIS
// =============================================================================

// UploadImage accepts the session photo and requests the initial analysis.
func (c *Controller) UploadImage(image string) Effect {
	if c.state.Busy() || image == "" {
		return nil
	}
	c.image = image
	c.pendingMode = genai.ModeInitial
	id := c.begin(StateAnalyzing, loadingAnalyzing)
	return AnalyzeEffect{RequestID: id, Image: image, Mode: genai.ModeInitial}
}

// LoadMore requests additional suggestions for the active tab. On the mix
// tab both lists are refreshed together.
func (c *Controller) LoadMore() Effect {
	if c.state != StateDashboard || c.analysis == nil {
		return nil
	}
	if c.activeTab == TabMix {
		id := c.begin(StateAnalyzing, loadingMoreStyles)
		return LoadMorePairEffect{RequestID: id, Image: c.image}
	}
	mode := genai.ModeMoreHair
	if c.activeTab == TabFashion {
		mode = genai.ModeMoreFashion
	}
	c.pendingMode = mode
	id := c.begin(StateAnalyzing, loadingMoreStyles)
	return AnalyzeEffect{RequestID: id, Image: c.image, Mode: mode}
}

// SubmitSearch interprets the search box: in link mode on the fashion tab
// it becomes a gated link try-on, otherwise a custom suggestion request.
func (c *Controller) SubmitSearch(query string) Effect {
	if c.state != StateDashboard || query == "" {
		return nil
	}
	if c.activeTab == TabFashion && c.searchMode == SearchLink {
		return c.linkTryOn(query)
	}
	c.pendingMode = genai.ModeCustom
	id := c.begin(StateAnalyzing, fmt.Sprintf("Looking for %q styles...", query))
	return AnalyzeEffect{RequestID: id, Image: c.image, Mode: genai.ModeCustom, Query: query}
}

// CompleteAnalysis applies the outcome of an AnalyzeEffect.
func (c *Controller) CompleteAnalysis(id uint64, result *model.AnalysisResult, err error) {
	if !c.settle(id) {
		return
	}
	mode := c.pendingMode
	if err != nil {
		switch mode {
		case genai.ModeInitial:
			c.fail(StateUpload, noticeAnalysisFailed)
		case genai.ModeCustom:
			c.fail(StateDashboard, noticeSearchFailed)
		default:
			c.fail(StateDashboard, noticeLoadMoreFailed)
		}
		return
	}

	switch mode {
	case genai.ModeInitial:
		c.analysis = result
	case genai.ModeMoreHair:
		if c.colorFilter != "" {
			for i := range result.HairStyles {
				result.HairStyles[i].SelectedColor = c.colorFilter
			}
		}
		c.analysis.AppendHairStyles(result.HairStyles)
	case genai.ModeMoreFashion:
		c.analysis.AppendOutfits(result.Outfits)
	case genai.ModeCustom:
		if c.activeTab == TabHair && c.colorFilter != "" {
			for i := range result.HairStyles {
				result.HairStyles[i].SelectedColor = c.colorFilter
			}
		}
		c.analysis = result
	}
	c.state = StateDashboard
}

// CompleteLoadMorePair applies a combined hair and fashion refresh. Both
// results must be present; on error the lists stay as they were before
// the request.
func (c *Controller) CompleteLoadMorePair(id uint64, hair, fashion *model.AnalysisResult, err error) {
	if !c.settle(id) {
		return
	}
	if err != nil || hair == nil || fashion == nil {
		c.fail(StateDashboard, noticeLoadMoreFailed)
		return
	}
	c.analysis.AppendHairStyles(hair.HairStyles)
	c.analysis.AppendOutfits(fashion.Outfits)
	c.state = StateDashboard
}

// =============================================================================
// TRY-ON GENERATION (GATED)
// =============================================================================

// gated runs trigger if credits remain, otherwise opens the upgrade prompt
// and leaves the state unchanged. A session left open past midnight gets
// the fresh day's quota on its next gated trigger.
func (c *Controller) gated(trigger func() Effect) Effect {
	if u := c.engine.ReconcileDayRollover(c.usage); u.LastUsedDate != c.usage.LastUsedDate {
		c.usage = u
		c.persistUsage()
	}
	var eff Effect
	if !c.engine.Gate(c.usage, func() { eff = trigger() }) {
		c.plansOpen = true
		return nil
	}
	return eff
}

// TryOn requests a generated look for one style from the active tab.
func (c *Controller) TryOn(item model.StyleItem) Effect {
	if c.state != StateDashboard || c.image == "" {
		return nil
	}
	return c.gated(func() Effect {
		kind := model.KindHair
		if c.activeTab != TabHair {
			kind = model.KindFashion
		}
		desc := model.DescriptionWithColor(item, kind)
		c.pendingGen = &pendingGeneration{
			styleName:   item.Name,
			description: desc,
			kind:        kind,
			items:       []model.StyleItem{item},
		}
		colorPrefix := ""
		if item.SelectedColor != "" {
			colorPrefix = item.SelectedColor + " "
		}
		id := c.begin(StateGeneratingImage, fmt.Sprintf("Magic in progress! Applying %s%s...", colorPrefix, item.Name))
		return VisualizeEffect{RequestID: id, Image: c.image, Description: desc, Kind: kind}
	})
}

// MixTryOn requests a combined look from the two mix slots. An incomplete
// pair is rejected before any gating or collaborator call.
func (c *Controller) MixTryOn() (Effect, error) {
	if c.state != StateDashboard || c.image == "" {
		return nil, nil
	}
	if !c.mix.Complete() {
		return nil, ErrIncompleteMix
	}
	eff := c.gated(func() Effect {
		hairDesc := model.DescriptionWithColor(*c.mix.Hair, model.KindHair)
		outfitDesc := model.DescriptionWithColor(*c.mix.Outfit, model.KindFashion)
		desc := fmt.Sprintf("Hair: %s. Outfit: %s.", hairDesc, outfitDesc)
		c.pendingGen = &pendingGeneration{
			styleName:   mixLookName,
			description: desc,
			kind:        model.KindMix,
			items:       []model.StyleItem{*c.mix.Hair, *c.mix.Outfit},
		}
		id := c.begin(StateGeneratingImage, loadingMix)
		return VisualizeEffect{RequestID: id, Image: c.image, Description: desc, Kind: model.KindMix}
	})
	return eff, nil
}

// linkTryOn requests a try-on of the product at a URL.
func (c *Controller) linkTryOn(url string) Effect {
	return c.gated(func() Effect {
		c.pendingGen = &pendingGeneration{
			styleName: linkedOutfitName,
			kind:      model.KindFashion,
		}
		id := c.begin(StateAnalyzing, loadingLink)
		return LinkTryOnEffect{RequestID: id, Image: c.image, URL: url}
	})
}

// CompleteVisualize applies a generated look. Success appends a history
// item, consumes one credit, and shows the result; a credit is never
// consumed on failure. description is non-empty only for link try-ons,
// whose description is produced by the collaborator.
func (c *Controller) CompleteVisualize(id uint64, image, description string, err error) {
	gen := c.pendingGen
	if !c.settle(id) {
		return
	}
	if err != nil {
		switch {
		case gen == nil:
			c.fail(StateDashboard, noticeGenerationFailed)
		case gen.styleName == linkedOutfitName:
			c.fail(StateDashboard, noticeLinkFailed)
		case gen.kind == model.KindMix:
			c.fail(StateDashboard, noticeMixFailed)
		default:
			c.fail(StateDashboard, noticeGenerationFailed)
		}
		return
	}
	if gen == nil {
		c.state = StateDashboard
		return
	}

	desc := gen.description
	items := gen.items
	if gen.styleName == linkedOutfitName {
		desc = description
		items = []model.StyleItem{{Name: linkedOutfitName, Description: description}}
	}
	c.ledger.Append(model.NewHistoryItem(image, gen.styleName, desc, gen.kind, items))

	c.usage = c.engine.Consume(c.usage)
	c.persistUsage()

	c.source = SourceHistory
	c.state = StateShowingResult
}

// =============================================================================
// PREVIEWS (FREE)
// =============================================================================

// GeneratePreview requests a free thumbnail for one style card. Previews
// do not enter a busy state and may overlap.
func (c *Controller) GeneratePreview(item model.StyleItem) Effect {
	if c.image == "" || c.analysis == nil {
		return nil
	}
	kind := model.KindFashion
	if c.activeTab == TabHair || c.activeTab == TabMix {
		kind = model.KindHair
	}
	c.seq++
	c.pendingPreviews[c.seq] = item.Name
	return PreviewEffect{
		RequestID:   c.seq,
		Image:       c.image,
		Name:        item.Name,
		Description: model.DescriptionWithColor(item, kind),
		Kind:        kind,
	}
}

// CompletePreview stores a generated thumbnail on the matching style card.
// Failures are silent; the card simply keeps no thumbnail.
func (c *Controller) CompletePreview(id uint64, thumbnail string, err error) {
	name, ok := c.pendingPreviews[id]
	if !ok {
		return
	}
	delete(c.pendingPreviews, id)
	if err != nil || c.analysis == nil {
		return
	}
	c.analysis.SetThumbnailByName(name, thumbnail)
}

// =============================================================================
// GROUNDING LOOKUPS
// =============================================================================

// FindSalons requests a nearby-salon lookup. Without a known location no
// call is made and the prior screen stays up with a notice.
func (c *Controller) FindSalons() Effect {
	if c.state.Busy() {
		return nil
	}
	if c.location == nil {
		c.notice = noticeNoLocation
		return nil
	}
	id := c.begin(StateAnalyzing, loadingSalons)
	return SalonSearchEffect{RequestID: id, Coords: *c.location}
}

// FindShopping requests shopping links for an outfit.
func (c *Controller) FindShopping(item model.StyleItem) Effect {
	if c.state.Busy() {
		return nil
	}
	id := c.begin(StateAnalyzing, loadingShopping)
	return ShoppingSearchEffect{RequestID: id, Item: item}
}

// CompleteGrounding applies a salon or shopping lookup. The collaborators
// never fail hard, so the result always renders; the screen returns to
// whichever state initiated the lookup.
func (c *Controller) CompleteGrounding(id uint64, result model.GroundingResult) {
	if !c.settle(id) {
		return
	}
	c.grounding = &result
	c.state = c.returnState
}

// =============================================================================
// STYLE SELECTION AND MIX
// =============================================================================

// SetColor assigns a color to every same-named style in both lists and
// refreshes any mix slot holding that style.
func (c *Controller) SetColor(name, color string) {
	if c.analysis == nil {
		return
	}
	c.analysis.SetColorByName(name, color)
	if c.mix.Hair != nil && c.mix.Hair.Name == name {
		updated := *c.mix.Hair
		updated.SelectedColor = color
		updated.Thumbnail = ""
		c.mix.Hair = &updated
	}
	if c.mix.Outfit != nil && c.mix.Outfit.Name == name {
		updated := *c.mix.Outfit
		updated.SelectedColor = color
		updated.Thumbnail = ""
		c.mix.Outfit = &updated
	}
}

// SetColorFilter applies one color to every hairstyle at once. An empty
// color clears the filter.
func (c *Controller) SetColorFilter(color string) {
	c.colorFilter = color
	if c.analysis != nil {
		c.analysis.ApplyHairColorFilter(color)
	}
}

// SelectMixHair fills the hair slot of the mix pair.
func (c *Controller) SelectMixHair(item model.StyleItem) {
	c.mix.Hair = &item
}

// SelectMixOutfit fills the outfit slot of the mix pair.
func (c *Controller) SelectMixOutfit(item model.StyleItem) {
	c.mix.Outfit = &item
}

// ClearMix empties both mix slots.
func (c *Controller) ClearMix() {
	c.mix = model.MixSelection{}
}

// =============================================================================
// RESULTS AND COLLECTION
// =============================================================================

// Navigate pages through the sequence the result screen is showing.
func (c *Controller) Navigate(dir history.Direction) {
	if c.state != StateShowingResult {
		return
	}
	if c.source == SourceCollection {
		c.saved.Navigate(dir)
		return
	}
	c.ledger.Navigate(dir)
}

// ToggleSaveCurrent saves or unsaves the look on the result screen.
func (c *Controller) ToggleSaveCurrent() {
	item, ok := c.CurrentResult()
	if !ok {
		return
	}
	c.saved.Toggle(item)
}

// CloseResult leaves the result screen for wherever it was opened from.
func (c *Controller) CloseResult() {
	if c.state != StateShowingResult {
		return
	}
	c.grounding = nil
	if c.source == SourceCollection {
		c.state = StateCollection
		return
	}
	c.state = StateDashboard
}

// OpenCollection shows the saved looks.
func (c *Controller) OpenCollection() {
	if c.state.Busy() {
		return
	}
	c.state = StateCollection
}

// CloseCollection returns to the dashboard, or to upload when no photo
// has been analyzed yet.
func (c *Controller) CloseCollection() {
	if c.state != StateCollection {
		return
	}
	if c.analysis == nil {
		c.state = StateUpload
		return
	}
	c.state = StateDashboard
}

// ViewCollectionItem opens one saved look on the result screen.
func (c *Controller) ViewCollectionItem(index int) {
	if c.state != StateCollection {
		return
	}
	c.saved.Select(index)
	if _, ok := c.saved.Current(); !ok {
		return
	}
	c.source = SourceCollection
	c.state = StateShowingResult
}

// DeleteFromCollection removes a saved look by ID.
func (c *Controller) DeleteFromCollection(id string) {
	c.saved.Remove(id)
}

// =============================================================================
// PURCHASES
// =============================================================================

// Purchase starts a simulated payment for a plan from the upgrade prompt.
func (c *Controller) Purchase(option payment.OptionID) Effect {
	if c.pendingPurchase != 0 {
		return nil
	}
	if _, ok := payment.Lookup(option); !ok {
		return nil
	}
	c.seq++
	c.pendingPurchase = c.seq
	c.loading = loadingPayment
	return PurchaseEffect{RequestID: c.seq, Option: option}
}

// CompletePurchase applies a finished payment to the usage record and
// closes the plan catalog.
func (c *Controller) CompletePurchase(id uint64, receipt *payment.Receipt, err error) {
	if id == 0 || id != c.pendingPurchase {
		return
	}
	c.pendingPurchase = 0
	c.loading = ""
	if err != nil {
		c.notice = "Payment failed. Please try again."
		return
	}

	updated, applyErr := payment.Apply(c.engine, c.usage, receipt)
	if applyErr != nil {
		c.notice = "Payment failed. Please try again."
		return
	}
	c.usage = updated
	c.persistUsage()
	c.plansOpen = false
	c.notice = receipt.Message
}

// =============================================================================
// SESSION LIFECYCLE
// =============================================================================

// NewSession discards the photo, analysis, history, and mix selection and
// returns to upload. The saved collection and the usage record persist.
func (c *Controller) NewSession() {
	if c.state.Busy() {
		return
	}
	c.image = ""
	c.analysis = nil
	c.ledger.Reset()
	c.mix = model.MixSelection{}
	c.colorFilter = ""
	c.grounding = nil
	c.notice = ""
	c.source = SourceHistory
	c.pendingID = 0
	c.pendingGen = nil
	c.pendingPreviews = make(map[uint64]string)
	c.state = StateUpload
}

// persistUsage writes the usage record after a mutation. Persistence is
// fire-and-forget; a failed write only logs a warning.
func (c *Controller) persistUsage() {
	if c.usageRepo == nil {
		return
	}
	if err := c.usageRepo.Save(c.usage); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to persist usage record: %v\n", err)
	}
}
