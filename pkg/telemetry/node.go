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

package telemetry

import (
	"strings"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

// configuredCoordinator is a seal coordinator declared in node config.
type configuredCoordinator struct {
	account string
}

func (c configuredCoordinator) CoordinatorAccount() string { return c.account }

// NodeOptions derives the group and seal-coordinator assembler inputs from
// the node section. An isolated node gets neither and reports as ungrouped.
func NodeOptions(node models.NodeConfig) []AssemblerOption {
	var opts []AssemblerOption

	if node.Grouped() {
		group := *node.Group
		opts = append(opts, WithGroupInfo(&group))
	}

	if sc := node.SealCoordinator; sc != nil && strings.TrimSpace(sc.Account) != "" {
		opts = append(opts, WithSealCoordinator(configuredCoordinator{account: strings.TrimSpace(sc.Account)}))
	}

	return opts
}
