package domain

import "path/filepath"

const (
	// ForgeDirName is the name of the internal engine state directory.
	ForgeDirName = ".forge"

	// StateDirName is the name of the persisted state directory.
	StateDirName = "state"

	// TmpDirName is the name of the scratch directory swept by recovery.
	TmpDirName = "tmp"

	// ConfigFileName is the name of the engine configuration file.
	ConfigFileName = "forge.yaml"

	// SnapshotKey is the state store key of the persisted observed-input snapshot.
	SnapshotKey = "plan/snapshot"

	// PlanKey is the state store key of the cached build plan.
	PlanKey = "plan/graph"

	// JournalCursorKey is the state store key of the change-journal cursor.
	JournalCursorKey = "journal/cursor"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultForgePath returns the default root directory for forge metadata.
func DefaultForgePath() string {
	return ForgeDirName
}

// DefaultStatePath returns the default path for the persisted state store.
func DefaultStatePath() string {
	return filepath.Join(ForgeDirName, StateDirName)
}

// DefaultTmpPath returns the default path for scratch state.
func DefaultTmpPath() string {
	return filepath.Join(ForgeDirName, TmpDirName)
}
