package model

// Row is the flat field map produced for one message. Keys are the CSV
// column names in Columns; values are already normalized and redacted.
type Row map[string]string

// Columns is the CSV column order. The writer emits exactly these, in this
// order, for every file it opens.
var Columns = []string{
	"date",
	"message_id",
	"thread_id",
	"labels",
	"from_email",
	"from_name",
	"sender_domain",
	"reply_to",
	"reply_to_domain",
	"delivered_to",
	"to",
	"cc",
	"bcc",
	"subject",
	"snippet",
	"has_attachment",
	"attachment_types",
	"attachment_count",
	"has_list_unsubscribe",
	"body_text",
	"body_html",
}

// IndexedRow pairs a finished row with its original fetch index so the
// collector can restore list order after the worker pool scrambles it.
type IndexedRow struct {
	Index int
	Row   Row
}

// ExportProgress is sent from the exporter to the UI as the run advances.
type ExportProgress struct {
	Listed    int  // message IDs discovered so far
	Fetched   int  // full messages retrieved
	Written   int  // rows written to CSV
	Skipped   int  // skipped via resume state
	Redacted  int  // total pattern matches replaced
	Files     int  // CSV files opened (rotation)
	Completed bool
	Err       error
}
