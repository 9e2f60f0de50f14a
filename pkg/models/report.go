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

import "encoding/json"

// SDataManagerInfo describes the running manager process.
type SDataManagerInfo struct {
	Version         string                    `json:"version"`
	Uptime          float64                   `json:"uptime"`
	SchedulerConfig NormalizedSchedulerConfig `json:"schedulerConfig"`
}

// PinStats counts pin ledger outcomes within the report window.
type PinStats struct {
	SealingCount int64 `json:"sealingCount"`
	SealedCount  int64 `json:"sealedCount"`
	FailedCount  int64 `json:"failedCount"`
	SealedSize   int64 `json:"sealedSize"`
}

// QueueInfo is the backlog of file records not yet finished.
type QueueInfo struct {
	PendingCount     int64 `json:"pendingCount"`
	PendingSizeTotal int64 `json:"pendingSizeTotal"`
}

type CleanupStats struct {
	DeletedCount int64 `json:"deletedCount"`
}

// GroupInfo is the node's storage-group membership.
type GroupInfo struct {
	GroupAccount string `json:"groupAccount" yaml:"groupAccount"`
	TotalMembers int    `json:"totalMembers" yaml:"totalMembers"`
	NodeIndex    int    `json:"nodeIndex" yaml:"nodeIndex"`
}

// UngroupedInfo is reported when the node has no group membership.
func UngroupedInfo() GroupInfo {
	return GroupInfo{}
}

// SrdStats is the reported subset of the storage node's SRD workload.
// srd_volumn_count keeps the spelling the collector indexes on.
type SrdStats struct {
	SrdComplete         int64 `json:"srd_complete"`
	SrdRemainingTask    int64 `json:"srd_remaining_task"`
	DiskAvailableForSrd int64 `json:"disk_available_for_srd"`
	DiskAvailable       int64 `json:"disk_available"`
	DiskVolume          int64 `json:"disk_volume"`
	SysDiskAvailable    int64 `json:"sys_disk_available"`
	SrdVolumeCount      int   `json:"srd_volumn_count"`
}

type StoragerStats struct {
	Srd   SrdStats        `json:"srd"`
	Files json.RawMessage `json:"files"`
}

// TelemetryReport is one tick's snapshot. Storager is nil when the storage
// node could not be reached; it is serialized as null.
type TelemetryReport struct {
	ChainAccount       string           `json:"chainAccount"`
	SmangerInfo        SDataManagerInfo `json:"smangerInfo"`
	PinStats           PinStats         `json:"pinStats"`
	Storager           *StoragerStats   `json:"storager"`
	GroupInfo          GroupInfo        `json:"groupInfo"`
	QueueStats         QueueInfo        `json:"queueStats"`
	CleanupStats       CleanupStats     `json:"cleanupStats"`
	HasSealCoordinator bool             `json:"hasSealCoordinator"`
}

// StorageOnline reports whether the storage node answered this tick.
func (r *TelemetryReport) StorageOnline() bool {
	return r != nil && r.Storager != nil
}
