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

// WorkloadSrd is the srd section of the storage node's workload response.
type WorkloadSrd struct {
	SrdComplete         int64                      `json:"srd_complete"`
	SrdRemainingTask    int64                      `json:"srd_remaining_task"`
	DiskAvailableForSrd int64                      `json:"disk_available_for_srd"`
	DiskAvailable       int64                      `json:"disk_available"`
	DiskVolume          int64                      `json:"disk_volume"`
	SysDiskAvailable    int64                      `json:"sys_disk_available"`
	SrdDetail           map[string]json.RawMessage `json:"srd_detail"`
}

// WorkloadInfo is the storage node's workload snapshot. Files is kept raw
// and forwarded untouched.
type WorkloadInfo struct {
	Srd   WorkloadSrd     `json:"srd"`
	Files json.RawMessage `json:"files"`
}

// ToStoragerStats projects the fields reported to telemetry.
func (w *WorkloadInfo) ToStoragerStats() *StoragerStats {
	if w == nil {
		return nil
	}

	return &StoragerStats{
		Srd: SrdStats{
			SrdComplete:         w.Srd.SrdComplete,
			SrdRemainingTask:    w.Srd.SrdRemainingTask,
			DiskAvailableForSrd: w.Srd.DiskAvailableForSrd,
			DiskAvailable:       w.Srd.DiskAvailable,
			DiskVolume:          w.Srd.DiskVolume,
			SysDiskAvailable:    w.Srd.SysDiskAvailable,
			SrdVolumeCount:      len(w.Srd.SrdDetail),
		},
		Files: w.Files,
	}
}
