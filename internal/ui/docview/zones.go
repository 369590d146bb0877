package docview

import (
	"fmt"
	"strconv"
	"strings"
)

// zonePrefix namespaces widget click zones within the global zone manager.
const zonePrefix = "docview_widget_"

// WidgetZoneID returns the zone ID for the i-th decoration in the set.
func WidgetZoneID(i int) string {
	return fmt.Sprintf("%s%d", zonePrefix, i)
}

// WidgetIndexFromZoneID recovers the decoration index from a zone ID.
func WidgetIndexFromZoneID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, zonePrefix)
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return i, true
}
