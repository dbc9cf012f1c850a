package compose

import (
	"encoding/json"

	"github.com/mrjoshuak/otio-topology/discreteinfo"
	"github.com/mrjoshuak/otio-topology/ordinate"
	"github.com/mrjoshuak/otio-topology/rational"
)

// clipJSON is Clip's wire shape, matching gotio/clip.go's pattern of a
// private JSON-tagged struct standing in for the unexported field set.
type clipJSON struct {
	Name             string `json:"name"`
	MediaBoundsStart float64 `json:"media_bounds_start"`
	MediaBoundsEnd   float64 `json:"media_bounds_end"`
	MediaRateNum     int32  `json:"media_rate_num"`
	MediaRateDen     uint32 `json:"media_rate_den"`
	MediaStartIndex  int64  `json:"media_start_index"`
	MediaReference   string `json:"media_reference"`
}

// MarshalJSON implements json.Marshaler.
func (c *Clip) MarshalJSON() ([]byte, error) {
	return json.Marshal(&clipJSON{
		Name:             c.name,
		MediaBoundsStart: float64(c.mediaBounds.Start),
		MediaBoundsEnd:   float64(c.mediaBounds.End),
		MediaRateNum:     c.mediaInfo.SampleRateHz.Num,
		MediaRateDen:     c.mediaInfo.SampleRateHz.Den,
		MediaStartIndex:  c.mediaInfo.StartIndex,
		MediaReference:   c.mediaReference,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (c *Clip) UnmarshalJSON(data []byte) error {
	var j clipJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	c.name = j.Name
	c.mediaBounds = ordinate.Interval{
		Start: ordinate.Ordinate(j.MediaBoundsStart),
		End:   ordinate.Ordinate(j.MediaBoundsEnd),
	}
	c.mediaInfo = discreteinfo.New(rational.New(j.MediaRateNum, j.MediaRateDen), j.MediaStartIndex)
	c.mediaReference = j.MediaReference
	return nil
}
