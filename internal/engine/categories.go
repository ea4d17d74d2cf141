package engine

import (
	"sort"
	"strings"
)

// Categories is the fixed purchase taxonomy. Unknown categories are
// rejected at validation, not coerced.
var Categories = []string{
	"food_delivery", "gaming", "online_shopping", "entertainment",
	"alcohol", "clothing", "electronics", "subscriptions",
	"groceries", "utilities", "transport", "healthcare",
	"education", "other",
}

// ValidCategory reports whether cat is part of the taxonomy.
func ValidCategory(cat string) bool {
	for _, c := range Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// CategoryLabel renders "food_delivery" as "Food Delivery".
func CategoryLabel(cat string) string {
	words := strings.Split(cat, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// itemKeywords maps free-text purchase descriptions to categories so the
// client form can pre-fill the category field.
var itemKeywords = map[string]string{
	// food delivery
	"pizza": "food_delivery", "burger": "food_delivery", "biryani": "food_delivery",
	"sushi": "food_delivery", "noodles": "food_delivery", "fries": "food_delivery",
	"cake": "food_delivery", "ice cream": "food_delivery", "coffee": "food_delivery",
	"sandwich": "food_delivery", "pasta": "food_delivery", "dosa": "food_delivery",
	"thali": "food_delivery", "momos": "food_delivery", "rolls": "food_delivery",
	"smoothie": "food_delivery", "juice": "food_delivery", "snack": "food_delivery",
	"chocolate": "food_delivery", "dessert": "food_delivery", "milkshake": "food_delivery",
	"ramen": "food_delivery", "shawarma": "food_delivery", "kebab": "food_delivery",
	// gaming
	"game": "gaming", "ps5": "gaming", "xbox": "gaming", "steam": "gaming",
	"controller": "gaming", "valorant": "gaming", "minecraft": "gaming",
	"fortnite": "gaming", "pubg": "gaming", "nintendo": "gaming",
	"playstation": "gaming", "console": "gaming",
	// electronics
	"laptop": "electronics", "phone": "electronics", "tablet": "electronics",
	"ipad": "electronics", "macbook": "electronics", "airpods": "electronics",
	"earphones": "electronics", "headphones": "electronics", "charger": "electronics",
	"keyboard": "electronics", "monitor": "electronics", "smartwatch": "electronics",
	"camera": "electronics", "speaker": "electronics", "tv": "electronics",
	"iphone": "electronics", "powerbank": "electronics", "drone": "electronics",
	// clothing
	"shirt": "clothing", "shoes": "clothing", "sneakers": "clothing",
	"dress": "clothing", "jacket": "clothing", "jeans": "clothing",
	"hoodie": "clothing", "t-shirt": "clothing", "tshirt": "clothing",
	"cap": "clothing", "backpack": "clothing", "sunglasses": "clothing",
	"perfume": "clothing", "saree": "clothing", "kurta": "clothing",
	"boots": "clothing", "sandals": "clothing",
	// entertainment
	"movie": "entertainment", "netflix": "entertainment", "concert": "entertainment",
	"ticket": "entertainment", "spotify": "entertainment", "hotstar": "entertainment",
	"theatre": "entertainment", "bowling": "entertainment",
	// alcohol
	"beer": "alcohol", "wine": "alcohol", "whiskey": "alcohol", "vodka": "alcohol",
	"rum": "alcohol", "cocktail": "alcohol", "gin": "alcohol", "tequila": "alcohol",
	// subscriptions
	"subscription": "subscriptions", "premium": "subscriptions",
	"membership": "subscriptions", "renewal": "subscriptions",
	// groceries
	"vegetables": "groceries", "fruits": "groceries", "milk": "groceries",
	"bread": "groceries", "rice": "groceries", "eggs": "groceries",
	"chicken": "groceries", "fish": "groceries", "flour": "groceries",
	"butter": "groceries", "cheese": "groceries",
	// transport
	"uber": "transport", "ola": "transport", "cab": "transport",
	"metro": "transport", "bus": "transport", "fuel": "transport",
	"petrol": "transport", "parking": "transport", "toll": "transport",
	"flight": "transport", "train": "transport",
	// healthcare
	"medicine": "healthcare", "doctor": "healthcare", "pharmacy": "healthcare",
	"hospital": "healthcare", "gym": "healthcare", "vitamin": "healthcare",
	"therapy": "healthcare",
	// education
	"book": "education", "course": "education", "udemy": "education",
	"tuition": "education", "exam": "education", "textbook": "education",
	"workshop": "education",
	// utilities
	"electricity": "utilities", "water": "utilities", "wifi": "utilities",
	"internet": "utilities", "recharge": "utilities", "bill": "utilities",
	"broadband": "utilities",
	// online shopping
	"amazon": "online_shopping", "flipkart": "online_shopping",
	"myntra": "online_shopping", "meesho": "online_shopping",
	"nykaa": "online_shopping",
}

// DetectCategory guesses a category from a free-text item description.
// Returns "" when nothing matches.
func DetectCategory(item string) string {
	text := strings.ToLower(strings.TrimSpace(item))
	if text == "" {
		return ""
	}
	if cat, ok := itemKeywords[text]; ok {
		return cat
	}
	// Longest keyword wins so "ice cream" beats "cream"-style collisions;
	// lexicographic tiebreak keeps the result stable.
	keys := make([]string, 0, len(itemKeywords))
	for k := range itemKeywords {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, keyword := range keys {
		if strings.Contains(text, keyword) {
			return itemKeywords[keyword]
		}
	}
	return ""
}
