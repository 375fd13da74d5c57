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

// Package printer decodes Printer-MIB supply readings into normalized metrics.
package printer

import "strconv"

const (
	// OIDModel is hrDeviceDescr for the first device entry.
	OIDModel = "1.3.6.1.2.1.25.3.2.1.3.1"
	// OIDDeviceStatus is hrDeviceStatus.
	OIDDeviceStatus = "1.3.6.1.2.1.25.3.2.1.5.1"
	// OIDTotalPages is prtMarkerLifeCount for marker 1.
	OIDTotalPages = "1.3.6.1.2.1.43.10.2.1.4.1.1"

	oidSupplyDescription = "1.3.6.1.2.1.43.11.1.1.6.1"
	oidSupplyMaxCapacity = "1.3.6.1.2.1.43.11.1.1.8.1"
	oidSupplyLevel       = "1.3.6.1.2.1.43.11.1.1.9.1"
)

// DefaultSupplySlots is the number of prtMarkerSuppliesTable rows scanned when unconfigured.
const DefaultSupplySlots = 9

// SupplyDescriptionOID returns the description OID for supply slot.
func SupplyDescriptionOID(slot int) string {
	return oidSupplyDescription + "." + strconv.Itoa(slot)
}

func SupplyMaxCapacityOID(slot int) string {
	return oidSupplyMaxCapacity + "." + strconv.Itoa(slot)
}

func SupplyLevelOID(slot int) string {
	return oidSupplyLevel + "." + strconv.Itoa(slot)
}
