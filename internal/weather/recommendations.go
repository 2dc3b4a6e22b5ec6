package weather

// Recommend maps an observation onto fixed advice strings. Thresholds are
// tuned for maize in a tropical climate.
func Recommend(o Observation) Recommendations {
	var r Recommendations

	switch {
	case o.Rainfall > 5:
		r.Irrigation = "Recent rainfall is sufficient. Reduce irrigation for the next 48 hours."
	case o.Temperature > 30 && o.Humidity < 50:
		r.Irrigation = "High temperature and low humidity detected. Increase irrigation frequency."
	case o.Temperature < 15:
		r.Irrigation = "Lower temperatures reduce evaporation. Adjust irrigation accordingly."
	default:
		r.Irrigation = "Maintain regular irrigation schedule based on soil moisture levels."
	}

	switch {
	case o.Humidity > 80 && o.Temperature > 22:
		r.Disease = "High risk for fungal diseases. Consider preventative fungicide application."
	case o.Rainfall > 10 && o.Temperature > 20:
		r.Disease = "Moderate disease risk due to recent rainfall. Monitor crops closely."
	default:
		r.Disease = "Low disease risk under current conditions. Maintain regular monitoring."
	}

	switch {
	case o.Temperature > 25 && o.Humidity > 60:
		r.Pests = "Conditions favorable for armyworm and aphid development. Scout fields regularly."
	case o.Temperature < 15:
		r.Pests = "Reduced pest activity expected due to lower temperatures."
	default:
		r.Pests = "Moderate pest risk. Implement regular monitoring practices."
	}

	switch {
	case o.WindSpeed > 20:
		r.General = "High winds may damage crops. Consider temporary windbreaks if available."
	case o.Temperature > 35:
		r.General = "Extreme heat may stress plants. Consider shade cloth for sensitive crops."
	case o.Temperature < 5:
		r.General = "Near freezing temperatures. Protect seedlings if possible."
	default:
		r.General = "Current conditions are generally favorable for maize growth."
	}

	return r
}
