// Copyright (c) 2025 StyleGenie
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stylegenie/stylegenie-tui/internal/cache"
	"github.com/stylegenie/stylegenie-tui/internal/genai"
	"github.com/stylegenie/stylegenie-tui/internal/model"
	"github.com/stylegenie/stylegenie-tui/internal/payment"
	"github.com/stylegenie/stylegenie-tui/internal/search"
	"github.com/stylegenie/stylegenie-tui/internal/session"
)

// callTimeout bounds every collaborator call issued from the UI loop.
const callTimeout = 120 * time.Second

// =============================================================================
// EFFECT RUNNER
// =============================================================================

// Runner executes session effects against the real collaborators and turns
// each into a Bubble Tea command posting exactly one completion message.
type Runner struct {
	genai    *genai.Client
	search   *search.Client
	payments *payment.Processor
	previews *cache.PreviewCache
}

// NewRunner wires the collaborators. previews may be nil when the preview
// cache is disabled.
func NewRunner(ai *genai.Client, sc *search.Client, proc *payment.Processor, previews *cache.PreviewCache) *Runner {
	return &Runner{genai: ai, search: sc, payments: proc, previews: previews}
}

// Exec turns one effect into the command that performs it. A nil effect
// (the controller declined the action) yields a nil command.
func (r *Runner) Exec(effect session.Effect) tea.Cmd {
	switch e := effect.(type) {
	case nil:
		return nil
	case session.AnalyzeEffect:
		return r.analyze(e)
	case session.LoadMorePairEffect:
		return r.loadMorePair(e)
	case session.VisualizeEffect:
		return r.visualize(e)
	case session.LinkTryOnEffect:
		return r.linkTryOn(e)
	case session.PreviewEffect:
		return r.preview(e)
	case session.SalonSearchEffect:
		return r.salons(e)
	case session.ShoppingSearchEffect:
		return r.shopping(e)
	case session.PurchaseEffect:
		return r.purchase(e)
	default:
		return nil
	}
}

func (r *Runner) analyze(e session.AnalyzeEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		result, err := r.genai.AnalyzeStyles(ctx, e.Image, e.Mode, e.Query)
		return analysisDoneMsg{id: e.RequestID, result: result, err: err}
	}
}

// loadMorePair runs the hair and fashion calls concurrently. The controller
// merges all-or-nothing, so a single message carries both results or the
// first error observed.
func (r *Runner) loadMorePair(e session.LoadMorePairEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		type outcome struct {
			result *model.AnalysisResult
			err    error
		}
		hairCh := make(chan outcome, 1)
		fashionCh := make(chan outcome, 1)

		go func() {
			res, err := r.genai.AnalyzeStyles(ctx, e.Image, genai.ModeMoreHair, "")
			hairCh <- outcome{res, err}
		}()
		go func() {
			res, err := r.genai.AnalyzeStyles(ctx, e.Image, genai.ModeMoreFashion, "")
			fashionCh <- outcome{res, err}
		}()

		hair := <-hairCh
		fashion := <-fashionCh

		err := hair.err
		if err == nil {
			err = fashion.err
		}
		return loadMorePairDoneMsg{id: e.RequestID, hair: hair.result, fashion: fashion.result, err: err}
	}
}

func (r *Runner) visualize(e session.VisualizeEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		image, err := r.genai.VisualizeStyle(ctx, e.Image, e.Description, e.Kind)
		return visualizeDoneMsg{id: e.RequestID, image: image, description: e.Description, err: err}
	}
}

// linkTryOn chains the describe and visualize steps. The description from
// the first step rides along in the completion so the controller can record
// it in the session history.
func (r *Runner) linkTryOn(e session.LinkTryOnEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()

		description, err := r.genai.DescribeOutfitFromURL(ctx, e.URL)
		if err != nil {
			return visualizeDoneMsg{id: e.RequestID, err: err}
		}
		image, err := r.genai.VisualizeStyle(ctx, e.Image, description, model.KindFashion)
		return visualizeDoneMsg{id: e.RequestID, image: image, description: description, err: err}
	}
}

// preview consults the thumbnail cache before generating. Cache errors are
// logged and treated as misses; a fresh thumbnail is stored best-effort.
func (r *Runner) preview(e session.PreviewEffect) tea.Cmd {
	return func() tea.Msg {
		if r.previews != nil {
			thumb, ok, err := r.previews.Get(e.Image, e.Description, e.Kind)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: preview cache read failed: %v\n", err)
			} else if ok {
				return previewDoneMsg{id: e.RequestID, thumbnail: thumb}
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		thumb, err := r.genai.VisualizeStyle(ctx, e.Image, e.Description, e.Kind)
		if err == nil && r.previews != nil {
			if perr := r.previews.Put(e.Image, e.Description, e.Kind, thumb); perr != nil {
				fmt.Fprintf(os.Stderr, "Warning: preview cache write failed: %v\n", perr)
			}
		}
		return previewDoneMsg{id: e.RequestID, thumbnail: thumb, err: err}
	}
}

func (r *Runner) salons(e session.SalonSearchEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		result := r.genai.FindNearbySalons(ctx, e.Coords)
		return groundingDoneMsg{id: e.RequestID, result: result}
	}
}

func (r *Runner) shopping(e session.ShoppingSearchEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		result := r.search.FindShoppingLinks(ctx, e.Item)
		return groundingDoneMsg{id: e.RequestID, result: result}
	}
}

func (r *Runner) purchase(e session.PurchaseEffect) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), callTimeout)
		defer cancel()
		receipt, err := r.payments.Purchase(ctx, e.Option)
		return purchaseDoneMsg{id: e.RequestID, receipt: receipt, err: err}
	}
}
