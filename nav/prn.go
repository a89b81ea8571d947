/*
	Copyright (c) 2025 easyadsb-monitor contributors
	Distributable under the terms of The "BSD New" License
	that can be found in the LICENSE file.

	prn.go: Ubx satellite numbering ranges, display-PRN derivation and GNSS
	talker inference, both driven off the same per-id ranges.
*/

package nav

import "fmt"

// derivePRN formats a raw Ubx satellite id into its display PRN, e.g.
// G3 (GPS), S120 (SBAS), R12 (GLONASS), I5 (IMES), Q3 (QZSS), E10 (Galileo),
// B12 (BeiDou). Ids outside every known range format with a bare "U" prefix.
func derivePRN(id int) string {
	switch {
	case id >= 1 && id <= 32:
		return fmt.Sprintf("G%d", id)
	case id >= 33 && id <= 64:
		return fmt.Sprintf("S%d", id+87)
	case id >= 65 && id <= 96:
		return fmt.Sprintf("R%d", id-64)
	case id >= 173 && id <= 182:
		return fmt.Sprintf("I%d", id-172)
	case id >= 193 && id <= 202:
		return fmt.Sprintf("Q%d", id-192)
	case id >= 301 && id <= 336:
		return fmt.Sprintf("E%d", id-300)
	case id >= 401 && id <= 437:
		return fmt.Sprintf("B%d", id-400)
	default:
		return fmt.Sprintf("U%d", id)
	}
}

// talkerForSatelliteId maps a raw Ubx satellite id to the talker prefix the
// constellation it belongs to would use, folding SBAS and QZSS to "GP" per
// the GSA combined-talker convention. IMES ids and ids outside every known
// range map to the generic "GN" talker.
func talkerForSatelliteId(id int) string {
	switch {
	case id >= 1 && id <= 32:
		return "GP"
	case id >= 33 && id <= 64:
		return "GP"
	case id >= 65 && id <= 96:
		return "GL"
	case id >= 193 && id <= 202:
		return "GP"
	case id >= 301 && id <= 336:
		return "GA"
	case id >= 401 && id <= 437:
		return "GB"
	default:
		return "GN"
	}
}
