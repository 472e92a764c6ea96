package views

import (
	"pomodoro/internal/app"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// IntakeForm asks for the task name and an estimated-hours category.
type IntakeForm struct {
	name     *widget.Entry
	estimate *widget.Select
	submit   *widget.Button
	back     *widget.Button
	content  fyne.CanvasObject
}

// NewIntakeForm builds the form. onSubmit receives the raw input; validation
// is left to the caller.
func NewIntakeForm(onSubmit func(name string, estimate app.Estimate), onBack func()) *IntakeForm {
	labels := make([]string, 0, len(app.EstimateOptions))
	for _, option := range app.EstimateOptions {
		labels = append(labels, option.Label())
	}

	form := &IntakeForm{
		name:     widget.NewEntry(),
		estimate: widget.NewSelect(labels, nil),
	}
	form.name.SetPlaceHolder("What are you working on?")
	form.estimate.PlaceHolder = "Estimated time"

	form.submit = widget.NewButton("Start Task", func() {
		estimate, _ := app.ParseEstimate(form.estimate.Selected)
		onSubmit(form.name.Text, estimate)
	})
	form.submit.Importance = widget.HighImportance
	form.back = widget.NewButton("Back", onBack)

	form.content = container.NewVBox(
		widget.NewLabelWithStyle("Task Mode", fyne.TextAlignCenter, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Task"),
		form.name,
		widget.NewLabel("Estimated time"),
		form.estimate,
		container.NewHBox(form.back, layout.NewSpacer(), form.submit),
	)
	return form
}

// Content returns the form's root object.
func (form *IntakeForm) Content() fyne.CanvasObject {
	return form.content
}

// Clear empties the inputs.
func (form *IntakeForm) Clear() {
	form.name.SetText("")
	form.estimate.ClearSelected()
}
