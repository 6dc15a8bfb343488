package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"email",
			"phone",
			"state",
			"service",
			"preferred_date",
			"english_level",
			"age",
			"education",
			"experience",
			"visa_type",
			"created_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 50,
			},

			"email": bson.M{
				"bsonType": "string",
				"pattern":  `^[^\s@]+@[^\s@]+\.[^\s@]+$`,
			},

			"phone": bson.M{
				"bsonType":  "string",
				"minLength": 10,
				"maxLength": 15,
			},

			"state": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"service": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"message": bson.M{
				"bsonType":  "string",
				"maxLength": 500,
			},

			"preferred_date": bson.M{
				"bsonType": "string",
				"pattern":  `^\d{4}-\d{2}-\d{2}$`,
			},

			"english_level": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"age": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"education": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"experience": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"visa_type": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}
