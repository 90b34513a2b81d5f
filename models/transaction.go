// ABOUTME: Pending mutation queue entries awaiting propagation to the server
// ABOUTME: Acts as a write-ahead log: local state changes first, the row records the intent

package models

import "fmt"

// TransactionField identifies which article status flag a pending
// transaction applies to. The numeric values are the Tiny Tiny RSS
// updateArticle field codes.
type TransactionField int

const (
	TransactionFieldStarred   TransactionField = 0
	TransactionFieldPublished TransactionField = 1
	TransactionFieldUnread    TransactionField = 2
	TransactionFieldNote      TransactionField = 3
)

// String returns the field name used in logs and in the database enum.
func (f TransactionField) String() string {
	switch f {
	case TransactionFieldStarred:
		return "STARRED"
	case TransactionFieldPublished:
		return "PUBLISHED"
	case TransactionFieldUnread:
		return "UNREAD"
	case TransactionFieldNote:
		return "NOTE"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(f))
	}
}

// ParseTransactionField parses the stored field name.
func ParseTransactionField(s string) (TransactionField, error) {
	switch s {
	case "STARRED":
		return TransactionFieldStarred, nil
	case "PUBLISHED":
		return TransactionFieldPublished, nil
	case "UNREAD":
		return TransactionFieldUnread, nil
	case "NOTE":
		return TransactionFieldNote, nil
	default:
		return 0, fmt.Errorf("unknown transaction field %q", s)
	}
}

// PendingTransaction is a durable record of a local status mutation that
// has not yet been acknowledged by the server. Only the push pipeline may
// delete it, and only after the remote call applying it succeeds.
type PendingTransaction struct {
	ID        int64            `json:"id"`
	ArticleID int64            `json:"article_id"`
	Field     TransactionField `json:"field"`
	Value     bool             `json:"value"`
}
