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

// Package chain exposes the node's on-chain identity.
package chain

import (
	"errors"
	"strings"

	"github.com/jacklcz/spacex-sdatamanager/pkg/models"
)

var ErrAccountRequired = errors.New("chain account is required")

//go:generate mockgen -destination=mock_chain.go -package=chain github.com/jacklcz/spacex-sdatamanager/pkg/chain IdentityAccessor

// IdentityAccessor returns the chain account this node reports as.
type IdentityAccessor interface {
	ChainAccount() string
}

// StaticIdentity is an IdentityAccessor with a fixed account.
type StaticIdentity struct {
	account string
}

var _ IdentityAccessor = (*StaticIdentity)(nil)

func NewStaticIdentity(account string) (*StaticIdentity, error) {
	account = strings.TrimSpace(account)
	if account == "" {
		return nil, ErrAccountRequired
	}

	return &StaticIdentity{account: account}, nil
}

// NewIdentityFromConfig reads the account from the chain section.
func NewIdentityFromConfig(cfg models.ChainConfig) (*StaticIdentity, error) {
	return NewStaticIdentity(cfg.Account)
}

func (s *StaticIdentity) ChainAccount() string {
	return s.account
}
