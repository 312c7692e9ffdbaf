package notify

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unknowncanwrite/ship/internal/checklist"
)

func resolve(t *testing.T, cfg checklist.Configuration, taskID string) checklist.ResolvedTask {
	t.Helper()
	task, ok := checklist.NewDefaultCatalog().Resolve(cfg).Task(taskID)
	require.True(t, ok, "task %s not in plan", taskID)
	return task
}

func TestRender_Email(t *testing.T) {
	msg, err := Render(checklist.ResolvedTask{
		ID:      "p1_docs",
		Kind:    checklist.TaskKindEmail,
		To:      "a@example.com",
		CC:      "b@example.com, c@example.com",
		Subject: "Inspection 12/03/2024",
		Body:    "Dear team,\nPlease confirm.",
	})
	require.NoError(t, err)
	require.NotNil(t, msg.Email)
	assert.Nil(t, msg.WhatsApp)

	assert.Equal(t, "Inspection 12/03/2024", msg.Email.Subject)
	assert.Equal(t,
		"mailto:a@example.com?cc=b%40example.com%2C%20c%40example.com&subject=Inspection%2012%2F03%2F2024&body=Dear%20team%2C%0APlease%20confirm.",
		msg.Email.MailtoURL)
}

func TestRender_HideSubject(t *testing.T) {
	msg, err := Render(checklist.ResolvedTask{
		ID:          "x",
		Kind:        checklist.TaskKindEmail,
		To:          "a@example.com",
		Subject:     "ignored",
		HideSubject: true,
	})
	require.NoError(t, err)
	assert.Empty(t, msg.Email.Subject)
	assert.Equal(t, "mailto:a@example.com", msg.Email.MailtoURL)
}

func TestRender_MailtoKeepsAddressesReadable(t *testing.T) {
	msg, err := Render(checklist.ResolvedTask{
		ID:   "p3_coc",
		Kind: checklist.TaskKindEmail,
		To:   "ops+coc@sgs.example, Karachi Desk <khi@sgs.example>,",
	})
	require.NoError(t, err)
	assert.Equal(t, "mailto:ops+coc@sgs.example,Karachi%20Desk%20%3Ckhi@sgs.example%3E", msg.Email.MailtoURL)
}

func TestRender_WhatsApp(t *testing.T) {
	msg, err := Render(checklist.ResolvedTask{
		ID:   "p4_send_bl_draft",
		Kind: checklist.TaskKindWhatsApp,
		To:   "+92 333 2990665",
		Body: "BL draft attached",
	})
	require.NoError(t, err)
	require.NotNil(t, msg.WhatsApp)
	assert.Equal(t, "https://wa.me/923332990665?text=BL%20draft%20attached", msg.WhatsApp.ShareURL)
}

func TestRender_PlainTask(t *testing.T) {
	_, err := Render(checklist.ResolvedTask{ID: "p3b_pay", Kind: checklist.TaskKindPlain})
	assert.ErrorIs(t, err, ErrNoMessage)
}

func TestRender_ResolvedCatalogTasks(t *testing.T) {
	cfg := checklist.Configuration{
		ShipmentID:   "SHP-9",
		ShipmentType: checklist.ShipmentTypeWithInspection,
		Forwarder:    checklist.ParseForwarder("manual", "Ali Freight", "whatsapp"),
		Fumigation:   checklist.ParseFumigation("sky-services", "", ""),
	}

	plan := checklist.NewDefaultCatalog().Resolve(cfg)
	messages := lo.FilterMap(plan.Tasks(), func(task checklist.ResolvedTask, _ int) (*Message, bool) {
		msg, err := Render(task)
		return msg, err == nil
	})
	assert.NotEmpty(t, messages)
	for _, msg := range messages {
		assert.True(t, (msg.Email == nil) != (msg.WhatsApp == nil), msg.TaskID)
	}

	bl := resolve(t, cfg, "p4_send_bl_draft")
	msg, err := Render(bl)
	require.NoError(t, err)
	require.NotNil(t, msg.WhatsApp)
	assert.Equal(t, "Ali Freight", msg.WhatsApp.Contact)
}
