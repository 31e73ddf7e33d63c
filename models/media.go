package models

// Media is stored inline on its tweet (or user) as a JSON column.
// UploadFileName doubles as the object storage key and is derived once
// at normalization time.
type Media struct {
  IdStr          string
  Type           string
  Url            string
  ExpandedUrl    string
  MediaUrl       string
  UploadFileName string
}
