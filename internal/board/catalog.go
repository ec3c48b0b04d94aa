package board

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Shivanand-hulikatti/activity-board/internal/apiclient"
	"github.com/Shivanand-hulikatti/activity-board/internal/dom"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/observability"
)

// LoadCatalog fetches the catalog and rebuilds every activity card and
// selection option from it. On failure the list area shows a static notice
// and the selection control is left alone; nothing is retried.
func (b *Board) LoadCatalog(ctx context.Context) error {
	catalog, err := b.api.ListActivities(ctx)
	observability.RecordBoardOperation("list", apiclient.Kind(err))

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.log.Error("failed to load activities", zap.Error(err), zap.String("kind", apiclient.Kind(err)))
		b.list.RemoveChildren().AppendChild(dom.NewElement("p").AppendText(loadFailedText))
		return err
	}

	b.renderCatalogLocked(catalog)
	return nil
}

// renderCatalogLocked discards the previous cards and options. Activities are
// rendered in name order so the same catalog always yields the same page.
func (b *Board) renderCatalogLocked(catalog model.Catalog) {
	b.list.RemoveChildren()

	selected := b.selectedActivityLocked()
	placeholder := b.placeholderOptionLocked()
	b.selectEl.RemoveChildren()
	b.selectEl.AppendChild(placeholder)

	for _, name := range catalog.Names() {
		details := catalog[name]
		b.list.AppendChild(b.activityCard(name, details))

		opt := dom.NewElement("option", "value", name).AppendText(name)
		if name == selected {
			opt.SetAttr("selected", "")
		}
		b.selectEl.AppendChild(opt)
	}
}

func (b *Board) activityCard(name string, details model.ActivityDetails) *dom.Element {
	card := dom.NewElement("div", "class", CardClass, "data-activity", name)
	card.Append(
		dom.NewElement("h4").AppendText(name),
		dom.NewElement("p").AppendText(details.Description),
		dom.NewElement("p").Append(
			dom.NewElement("strong").AppendText("Schedule:"),
		).AppendText(" "+details.Schedule),
		dom.NewElement("p", "class", "availability").Append(
			dom.NewElement("strong").AppendText("Availability:"),
		).AppendText(fmt.Sprintf(" %d spots left", details.SpotsLeft())),
	)

	section := dom.NewElement("div", "class", "participants-section")
	section.AppendChild(dom.NewElement("h5").AppendText("Participants"))
	if len(details.Participants) == 0 {
		section.AppendChild(dom.NewElement("p", "class", "no-participants").AppendText(noParticipantsText))
	} else {
		list := dom.NewElement("ul", "class", ParticipantsClass)
		for _, email := range details.Participants {
			list.AppendChild(b.participantItem(name, email))
		}
		section.AppendChild(list)
	}
	return card.Append(section)
}

// participantItem renders one participant with its remove control. The
// control sits in a tiny form so a click posts the target back; the data
// attributes identify it on the page.
func (b *Board) participantItem(activity, email string) *dom.Element {
	form := dom.NewElement("form", "class", "unregister-form", "method", "post", "action", b.unregisterPath)
	form.Append(
		dom.NewElement("input", "type", "hidden", "name", "activity", "value", activity),
		dom.NewElement("input", "type", "hidden", "name", "email", "value", email),
		dom.NewElement("button",
			"type", "submit",
			"class", RemoveClass,
			"data-activity", activity,
			"data-email", email,
			"title", "Unregister "+email,
		).AppendText("✖"),
	)

	return dom.NewElement("li").Append(
		dom.NewElement("span", "class", "participant-email").AppendText(email),
		form,
	)
}

// placeholderOptionLocked returns a detached copy of the empty-value option,
// creating one if the shell lacks it.
func (b *Board) placeholderOptionLocked() *dom.Element {
	text := "-- Select an activity --"
	for _, opt := range b.selectEl.ElementsByTag("option") {
		if opt.Attr("value") == "" {
			text = opt.Text()
			break
		}
	}
	return dom.NewElement("option", "value", "").AppendText(text)
}

func (b *Board) selectedActivityLocked() string {
	for _, opt := range b.selectEl.ElementsByTag("option") {
		if opt.HasAttr("selected") {
			return opt.Attr("value")
		}
	}
	return ""
}

// removeControlLocked finds the remove control for one participant.
func (b *Board) removeControlLocked(activity, email string) *dom.Element {
	for _, btn := range b.list.ElementsByClass(RemoveClass) {
		if btn.Attr("data-activity") == activity && btn.Attr("data-email") == email {
			return btn
		}
	}
	return nil
}
