package common

// Settings keys persisted in the local database.
const (
	SettingAdProbability         = "feed.ad_probability"
	SettingVisibilityProbability = "feed.visibility_probability"
	SettingShuffle               = "feed.shuffle"
)
