/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

// PinStatus is the lifecycle state of a pin_record row.
type PinStatus string

const (
	PinStatusSealing PinStatus = "sealing"
	PinStatusSealed  PinStatus = "sealed"
	PinStatusFailed  PinStatus = "failed"
)

// CleanupStatus is the state of a cleanup_record row.
type CleanupStatus string

const (
	CleanupStatusPending CleanupStatus = "pending"
	CleanupStatusDone    CleanupStatus = "done"
	CleanupStatusFailed  CleanupStatus = "failed"
)

// FileStatus is the state of a file_record row.
type FileStatus string

const (
	FileStatusNew               FileStatus = "new"
	FileStatusPendingReplica    FileStatus = "pending_replica"
	FileStatusInsufficientSpace FileStatus = "insufficient_space"
	FileStatusHandled           FileStatus = "handled"
	FileStatusSkipped           FileStatus = "skipped"
	FileStatusFailed            FileStatus = "failed"
)

// PendingStatuses are the file_record states counted as queue backlog.
func PendingStatuses() []FileStatus {
	return []FileStatus{FileStatusNew, FileStatusPendingReplica, FileStatusInsufficientSpace}
}

// PendingStatusStrings is PendingStatuses as plain strings for query binding.
func PendingStatusStrings() []string {
	statuses := PendingStatuses()
	out := make([]string, len(statuses))

	for i, s := range statuses {
		out[i] = string(s)
	}

	return out
}
