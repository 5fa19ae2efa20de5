package models

import (
	"fmt"

	"github.com/fatih/color"
)

const SnapshotKind string = "Snapshot"

// SnapshotVersion is bumped when the on-disk snapshot schema changes.
const SnapshotVersion string = "api.fdawatch.io/v1"

var IsAnsiDisabled = false

var HighlightAddedString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgGreen).SprintFunc()(a...)
}

var HighlightRemovedString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgRed).SprintFunc()(a...)
}

var HighlightChangedString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgYellow).SprintFunc()(a...)
}

var HighlightGrayString = func(a ...interface{}) string {
	if IsAnsiDisabled {
		return fmt.Sprint(a...)
	}
	return color.New(color.FgHiBlack).SprintFunc()(a...)
}
