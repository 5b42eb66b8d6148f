package models

import (
	"github.com/MLR-commits/Intranet_BAcademic/db"
	"github.com/MLR-commits/Intranet_BAcademic/settings"
)

var settingsData = settings.GetSettings()

// MongoDB
var DbConnect = db.NewConnection(
	settingsData.MONGO_HOST,
	settingsData.MONGO_DB,
)
