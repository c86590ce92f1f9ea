/*
Copyright 2026 the Petstore QA Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package handler

import (
	"time"

	"github.com/spf13/pflag"
)

// Options defines configurable handler options.
type Options struct {
	// RateLimit is the number of calls per hour advertised to a logged in user.
	RateLimit int

	// SessionLifetime is how long a login session lasts.
	SessionLifetime time.Duration
}

// AddFlags adds the options flags to the given flag set.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.IntVar(&o.RateLimit, "rate-limit", 5000, "Calls per hour advertised in the X-Rate-Limit header on login.")
	f.DurationVar(&o.SessionLifetime, "session-lifetime", time.Hour, "How long a login session lasts.")
}
