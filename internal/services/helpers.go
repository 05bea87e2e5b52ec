package services

import (
  "encoding/json"
  "time"
  "gorm.io/datatypes"
)

func txNow() time.Time {
  return time.Now().UTC()
}

func metadataColumn(raw json.RawMessage) datatypes.JSON {
  if len(raw) == 0 {
    return nil
  }
  return datatypes.JSON(raw)
}
