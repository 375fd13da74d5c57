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

package printer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/carverauto/printradar/pkg/models"
)

// Qualitative supply states reported instead of a percentage.
const (
	SupplyStatusOK              = "OK"
	SupplyStatusUnknown         = "Unknown"
	SupplyStatusCannotCalculate = "Cannot calculate"
	SupplyStatusError           = "Error"
)

// Printer-MIB sentinel levels.
const (
	levelSomeRemaining = -3
	levelUnknown       = -2
)

// Channel is the consumable a supply slot feeds into.
type Channel int

const (
	ChannelNone Channel = iota
	ChannelToner
	ChannelDrum
)

func (c Channel) String() string {
	switch c {
	case ChannelToner:
		return "toner"
	case ChannelDrum:
		return "drum"
	case ChannelNone:
		return "none"
	default:
		return fmt.Sprintf("channel(%d)", int(c))
	}
}

// ClassifySupply maps a supply description to a channel. Toner wins over drum.
func ClassifySupply(description string) Channel {
	d := strings.ToLower(description)

	if strings.Contains(d, "toner") && (strings.Contains(d, "black") || strings.Contains(d, "blk")) {
		return ChannelToner
	}

	if strings.Contains(d, "drum") {
		return ChannelDrum
	}

	return ChannelNone
}

// DecodeSupplyLevel converts raw prtMarkerSuppliesLevel and MaxCapacity values
// into either a percentage in [0,100] or a qualitative status. It never fails.
func DecodeSupplyLevel(currentRaw, maxRaw string) models.SupplyReading {
	reading := models.SupplyReading{CurrentRaw: currentRaw, MaxRaw: maxRaw}

	current, err := strconv.ParseInt(strings.TrimSpace(currentRaw), 10, 64)
	if err != nil {
		reading.Status = SupplyStatusError
		return reading
	}

	maxCapacity, err := strconv.ParseInt(strings.TrimSpace(maxRaw), 10, 64)
	if err != nil {
		reading.Status = SupplyStatusError
		return reading
	}

	switch {
	case current == levelSomeRemaining:
		reading.Status = SupplyStatusOK
	case current == levelUnknown:
		reading.Status = SupplyStatusUnknown
	case current < 0:
		reading.Status = fmt.Sprintf("Status: %d", current)
	case maxCapacity > 0:
		pct, ok := percentage(current, maxCapacity)
		if !ok {
			reading.Status = SupplyStatusCannotCalculate
			return reading
		}

		reading.Percentage = &pct
	default:
		reading.Status = SupplyStatusCannotCalculate
	}

	return reading
}

// percentage returns floor(current*100/max) when it lands in [0,100].
func percentage(current, maxCapacity int64) (int, bool) {
	if current > maxCapacity {
		return 0, false
	}

	var pct int64
	if current <= math.MaxInt64/100 {
		pct = current * 100 / maxCapacity
	} else {
		pct = int64(math.Floor(float64(current) / float64(maxCapacity) * 100))
	}

	if pct < 0 || pct > 100 {
		return 0, false
	}

	return int(pct), true
}
