package checklist

import "fmt"

// TaskKind tells the caller how a task is carried out.
type TaskKind string

const (
	TaskKindPlain    TaskKind = "plain"
	TaskKindEmail    TaskKind = "email"
	TaskKindWhatsApp TaskKind = "whatsapp"
)

// Phase ids, in workflow order.
const (
	PhasePreInspection = "p1"
	PhaseFumigation    = "p2"
	PhaseCOC           = "p3"
	PhaseForwarding    = "p4"
	PhaseFinalDelivery = "p5"
)

// TaskDefinition is a catalog entry. ID is the completion map key and must be
// stable across configurations; everything else is presentation.
type TaskDefinition struct {
	ID                   string
	Label                string
	Kind                 TaskKind
	To                   Template
	CC                   Template
	Subject              Template
	Body                 Template
	Note                 string
	SubTasks             []string
	NeedsAttachmentCheck bool
	HideSubject          bool
}

// phaseDefinition describes one phase. Static phases ignore the configuration
// in tasks; dynamic phases branch on the provider variant.
type phaseDefinition struct {
	id             string
	inspectionOnly bool
	title          func(Configuration) string
	tasks          func(Configuration) []TaskDefinition
}

// Catalog is the immutable set of phase definitions. It is safe for concurrent use.
type Catalog struct {
	dir    Directory
	phases []phaseDefinition
}

// NewCatalog builds the catalog around a contact directory.
func NewCatalog(dir Directory) *Catalog {
	c := &Catalog{dir: dir}
	c.phases = []phaseDefinition{
		{
			id:             PhasePreInspection,
			inspectionOnly: true,
			title:          fixedTitle("Phase 1: Pre-Inspection"),
			tasks:          c.preInspectionTasks,
		},
		{
			id:             PhaseFumigation,
			inspectionOnly: true,
			title: func(cfg Configuration) string {
				return fmt.Sprintf("Phase 2: Fumigation (%s)", c.dir.fumigation(cfg.Fumigation).DisplayName)
			},
			tasks: c.fumigationTasks,
		},
		{
			id:             PhaseCOC,
			inspectionOnly: true,
			title:          fixedTitle("Phase 3: COC Finalization"),
			tasks:          c.cocTasks,
		},
		{
			id: PhaseForwarding,
			title: func(cfg Configuration) string {
				return fmt.Sprintf("Phase 4: Forwarding (%s)", c.dir.forwarder(cfg.Forwarder).DisplayName)
			},
			tasks: c.forwardingTasks,
		},
		{
			id:    PhaseFinalDelivery,
			title: fixedTitle("Phase 5: Final Delivery"),
			tasks: c.finalDeliveryTasks,
		},
	}
	return c
}

// NewDefaultCatalog builds the catalog around the embedded directory.
func NewDefaultCatalog() *Catalog {
	return NewCatalog(DefaultDirectory())
}

func (c *Catalog) Directory() Directory {
	return c.dir
}

func fixedTitle(title string) func(Configuration) string {
	return func(Configuration) string { return title }
}

func (c *Catalog) preInspectionTasks(Configuration) []TaskDefinition {
	inspection := c.dir.Inspection
	exporter := c.dir.Exporter
	return []TaskDefinition{
		{
			ID:                   "p1_docs",
			Label:                "Prepare Inspection Documents & send to SGS",
			Kind:                 TaskKindEmail,
			NeedsAttachmentCheck: true,
			To:                   Literal(inspection.To),
			CC:                   Literal(joinRecipients(inspection.CC)),
			Subject: func(ctx TemplateContext) string {
				return fmt.Sprintf("%s, %s - %s - %s - INSPECTION REQ - %s",
					exporter, ctx.Fields.Invoice, ctx.Fields.IDF, ctx.Fields.Consignee, ctx.InspectionDate())
			},
			Body: func(ctx TemplateContext) string {
				return fmt.Sprintf("Dear %s,\n\nPlease see attached Documents, kindly arrange inspection for %s.\nAttached - RFC, declaration, IDF & Commercial Invoice.",
					inspection.Greeting, ctx.InspectionDate())
			},
		},
		{
			ID:                   "p1_fumigation",
			Label:                "Book Fumigation (WhatsApp)",
			Kind:                 TaskKindWhatsApp,
			NeedsAttachmentCheck: true,
			To:                   Literal(c.dir.FumigationBooking),
		},
	}
}

func (c *Catalog) fumigationTasks(cfg Configuration) []TaskDefinition {
	entry := c.dir.fumigation(cfg.Fumigation)
	send := TaskDefinition{
		ID:                   "p2_fum_docs",
		Label:                fmt.Sprintf("%s: Send Required Docs for Fumigation Certificate", entry.Label),
		Kind:                 providerTaskKind(cfg.Fumigation),
		NeedsAttachmentCheck: true,
		To:                   Literal(entry.To),
		CC:                   Literal(joinRecipients(entry.CC)),
		Subject: func(ctx TemplateContext) string {
			return "Fumigation Certificate Request - INV# " + ctx.InvoiceOrID()
		},
		Body: Literal("Please find attached the required documents for fumigation certificate processing. Kindly arrange the fumigation certificate at your earliest convenience."),
	}
	return []TaskDefinition{
		send,
		{ID: "p2_fum_cert_verify", Label: "Receive & Verify Fumigation Certificate as per Documents"},
	}
}

func (c *Catalog) cocTasks(Configuration) []TaskDefinition {
	const replyNote = "Reply to the original SGS inspection email."
	return []TaskDefinition{
		{ID: "p3_prepare_docs", Label: "PREPARE DOCUMENT"},
		{
			ID:                   "p3a_sgs_docs",
			Label:                "Send Shipment Documents to SGS for COC Draft",
			Kind:                 TaskKindEmail,
			NeedsAttachmentCheck: true,
			HideSubject:          true,
			Note:                 replyNote,
			To:                   Literal(c.dir.Inspection.To),
			Body:                 Literal("Please see attached documents, and send payment invoice and COC Draft."),
		},
		{ID: "p3b_draft", Label: "Receive & Verify Draft"},
		{ID: "p3b_pay", Label: "Process SGS Payment"},
		{
			ID:                   "p3b_confirm",
			Label:                "Request Final COC",
			Kind:                 TaskKindEmail,
			NeedsAttachmentCheck: true,
			HideSubject:          true,
			Note:                 replyNote,
			To:                   Literal(c.dir.Inspection.To),
			Body:                 Literal("COC Draft Confirmed. Payment attached. Please issue Final."),
			SubTasks:             []string{"CONFIRM ATTACHMENT: SGS PAYMENT INVOICE & SGS PAYMENT CHECK"},
		},
	}
}

func (c *Catalog) forwardingTasks(cfg Configuration) []TaskDefinition {
	entry := c.dir.forwarder(cfg.Forwarder)

	prepareLabel := "PREPARE BL DRAFT AS PER ACTUAL LOADED"
	if cfg.WithInspection() {
		prepareLabel = "PREPARE BL DRAFT AS PER INSPECTION DOCUMENTS"
	}

	kind := providerTaskKind(cfg.Forwarder)
	via := "EMAIL"
	if kind == TaskKindWhatsApp {
		via = "WHATSAPP"
	}

	return []TaskDefinition{
		{ID: "p4_prepare_bl", Label: prepareLabel},
		{
			ID:                   "p4_send_bl_draft",
			Label:                fmt.Sprintf("SEND BL DRAFT TO %s VIA %s", entry.Label, via),
			Kind:                 kind,
			NeedsAttachmentCheck: true,
			To:                   Literal(entry.To),
			CC:                   Literal(joinRecipients(entry.CC)),
			Subject: func(ctx TemplateContext) string {
				return fmt.Sprintf("Draft Bill of Lading (BL) Attached - %s - %s", ctx.Fields.Container, ctx.Fields.Invoice)
			},
			Body: func(ctx TemplateContext) string {
				return fmt.Sprintf("Please find attached the draft Bill of Lading (BL).\nAgainst Container Number - %s\nBooking Number - %s",
					ctx.Fields.Container, ctx.Fields.Booking)
			},
		},
	}
}

func (c *Catalog) finalDeliveryTasks(Configuration) []TaskDefinition {
	return []TaskDefinition{
		{ID: "p5_final_bl", Label: "Receive & Verify Final BL"},
		{
			ID:                   "p5_send_docs",
			Label:                "Send Final Shipping Documents to Customer",
			Kind:                 TaskKindEmail,
			NeedsAttachmentCheck: true,
			CC:                   Literal(joinRecipients(c.dir.CustomerDocuments.CC)),
			Subject: func(ctx TemplateContext) string {
				return fmt.Sprintf("Final Shipping Documents - %s - %s - %s", ctx.Fields.Consignee, ctx.Fields.Container, ctx.InvoiceOrID())
			},
			Body: func(ctx TemplateContext) string {
				return fmt.Sprintf("Dear %s,\n\nPlease find attached the final shipping documents.\nContainer Number - %s\nBL / Booking Number - %s\nETA - %s",
					ctx.Fields.Customer, ctx.Fields.Container, ctx.Fields.Booking, FormatDate(ctx.Fields.ETA))
			},
			SubTasks: []string{"CONFIRM ATTACHMENT: FINAL BL, COC & COMMERCIAL INVOICE"},
		},
		{ID: "p5_payment", Label: "Confirm Payment Received"},
	}
}

// providerTaskKind frames a provider task as email unless a manual provider asked for WhatsApp.
func providerTaskKind(p Provider) TaskKind {
	if p.IsManual() && p.Method == ContactMethodWhatsApp {
		return TaskKindWhatsApp
	}
	return TaskKindEmail
}
