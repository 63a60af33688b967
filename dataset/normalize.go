package dataset

import (
	"fmt"

	"goa.design/agentbench/dialog"
)

// Normalize fills in defaults for a dialog decoded by Load: a missing
// turns/profile_gt/blueprint mapping becomes its empty default, and a
// missing dialog_id is synthesized from the dataset index. The dialog's
// own type is preserved; this never rewrites InvalidJSONError.
func Normalize(d dialog.Dialog) dialog.Dialog {
	if d.DialogID == "" {
		d.DialogID = fmt.Sprintf("dialog_%d", d.DatasetIndex)
	}
	if d.Turns == nil {
		d.Turns = []dialog.Turn{}
	}
	return d
}
