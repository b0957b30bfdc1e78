package qdrant

import (
	"github.com/fwojciec/menuboard"
	pb "github.com/qdrant/go-client/qdrant"
)

// Payload keys.
const (
	keyID           = "doc_id"
	keyContent      = "content"
	keyBrand        = "brand"
	keyName         = "name"
	keyCategory     = "category"
	keyCalories     = "calories"
	keySugars       = "sugars"
	keyProtein      = "protein"
	keySaturatedFat = "saturated_fat"
	keySodium       = "sodium"
	keyCaffeine     = "caffeine"
)

func toPayload(doc *menuboard.Document) map[string]*pb.Value {
	m := doc.Metadata
	return map[string]*pb.Value{
		keyID:           stringValue(doc.ID),
		keyContent:      stringValue(doc.Content),
		keyBrand:        stringValue(string(m.Brand)),
		keyName:         stringValue(m.Name),
		keyCategory:     stringValue(m.Category),
		keyCalories:     intValue(m.Calories),
		keySugars:       intValue(m.Sugars),
		keyProtein:      intValue(m.Protein),
		keySaturatedFat: intValue(m.SaturatedFat),
		keySodium:       intValue(m.Sodium),
		keyCaffeine:     intValue(m.Caffeine),
	}
}

func fromPayload(p map[string]*pb.Value) *menuboard.Document {
	return &menuboard.Document{
		ID:      p[keyID].GetStringValue(),
		Content: p[keyContent].GetStringValue(),
		Metadata: menuboard.DocumentMetadata{
			Brand:        menuboard.Brand(p[keyBrand].GetStringValue()),
			Name:         p[keyName].GetStringValue(),
			Category:     p[keyCategory].GetStringValue(),
			Calories:     int(p[keyCalories].GetIntegerValue()),
			Sugars:       int(p[keySugars].GetIntegerValue()),
			Protein:      int(p[keyProtein].GetIntegerValue()),
			SaturatedFat: int(p[keySaturatedFat].GetIntegerValue()),
			Sodium:       int(p[keySodium].GetIntegerValue()),
			Caffeine:     int(p[keyCaffeine].GetIntegerValue()),
		},
	}
}

// brandFilter matches any of brands, or nil when brands is empty.
func brandFilter(brands []menuboard.Brand) *pb.Filter {
	if len(brands) == 0 {
		return nil
	}
	should := make([]*pb.Condition, len(brands))
	for i, b := range brands {
		should[i] = &pb.Condition{
			ConditionOneOf: &pb.Condition_Field{
				Field: &pb.FieldCondition{
					Key: keyBrand,
					Match: &pb.Match{
						MatchValue: &pb.Match_Keyword{Keyword: string(b)},
					},
				},
			},
		}
	}
	return &pb.Filter{Should: should}
}

func stringValue(s string) *pb.Value {
	return &pb.Value{Kind: &pb.Value_StringValue{StringValue: s}}
}

func intValue(n int) *pb.Value {
	return &pb.Value{Kind: &pb.Value_IntegerValue{IntegerValue: int64(n)}}
}
