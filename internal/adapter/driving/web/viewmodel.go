package web

import (
	"fmt"

	vm "github.com/ericfisherdev/postwriter/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/postwriter/internal/application"
	"github.com/ericfisherdev/postwriter/internal/domain/model"
)

const (
	// lockedSlots is the number of padlocked circles shown after the free ones.
	lockedSlots = 3

	slotAvailable = "available"
	slotUsed      = "used"
	slotLocked    = "locked"
)

// toHomeViewModel builds the page state for a session. Outcome fields
// (Warning, Error, Result) are left for the caller to fill.
func toHomeViewModel(sess model.Session, csrfToken, topic string) vm.HomeViewModel {
	return vm.HomeViewModel{
		CSRFToken:   csrfToken,
		Topic:       topic,
		Meter:       toUsageMeterViewModel(sess.Usage),
		Privileged:  sess.Privileged,
		ShowUpgrade: application.ShowUpgrade(sess.Usage, sess.Privileged),
		CanGenerate: application.CanGenerate(sess.Usage, sess.Privileged),
	}
}

// toUsageMeterViewModel renders FreeLimit numbered circles, marking used ones
// with a check, followed by the locked premium circles.
func toUsageMeterViewModel(u model.Usage) vm.UsageMeterViewModel {
	slots := make([]vm.MeterSlotViewModel, 0, model.FreeLimit+lockedSlots)

	for i := 1; i <= model.FreeLimit; i++ {
		if u.Used() >= i {
			slots = append(slots, vm.MeterSlotViewModel{State: slotUsed, Label: "✓"})
			continue
		}
		slots = append(slots, vm.MeterSlotViewModel{State: slotAvailable, Label: fmt.Sprintf("%d", i)})
	}
	for range lockedSlots {
		slots = append(slots, vm.MeterSlotViewModel{State: slotLocked, Label: "🔒"})
	}

	summary := "Upgrade for unlimited posts!"
	if u.Remaining() > 0 {
		summary = fmt.Sprintf("%d remaining!", u.Remaining())
	}

	return vm.UsageMeterViewModel{
		UsedLabel: usedLabel(u),
		Summary:   summary,
		Slots:     slots,
	}
}

// toResultViewModel converts a generated post into the result panel.
func toResultViewModel(post string, sess model.Session) *vm.ResultViewModel {
	summary := "You've used all your free posts!"
	if sess.Usage.Remaining() > 0 {
		summary = fmt.Sprintf("%d remaining!", sess.Usage.Remaining())
	}

	return &vm.ResultViewModel{
		Post:        post,
		PreviewHTML: RenderMarkdown(post),
		CopyScript:  CopyScript(post),
		ShowUsage:   !sess.Privileged,
		UsedLabel:   usedLabel(sess.Usage),
		Summary:     summary,
	}
}

func usedLabel(u model.Usage) string {
	return fmt.Sprintf("%d/%d", u.Used(), model.FreeLimit)
}
