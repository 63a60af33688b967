package turneval

// This file groups the keyword/alias tables the rest of the package
// consults. They are data, not algorithm, so the rule set can evolve
// without touching the resolvers/extractors that use it.

// fixedConstraintKeywords maps a literal user constraint string to the keyword
// list that, if found in a prediction without a negation guard, counts as
// a contradiction of that constraint.
var fixedConstraintKeywords = map[string][]string{
	"不使用杠杆":   {"杠杆", "融资融券", "加杠杆"},
	"不做短线交易":  {"短线", "日内", "频繁交易"},
	"不投分级基金":  {"分级基金"},
	"不投海外市场":  {"海外市场", "美股", "港股"},
	"不参与题材炒作": {"题材炒作", "追热点"},
}

// negationGuards are words that, if present anywhere in the prediction, indicate
// the assistant is warning against the behavior rather than recommending
// it — guarding against a false-positive contradiction.
var negationGuards = []string{"不建议", "避免", "不要", "不应", "不宜", "谨慎"}

// riskTagAliases maps surface forms (Chinese/English) onto canonical risk
// tag codes.
var riskTagAliases = map[string]string{
	"volatility_risk":             "volatility_risk",
	"波动风险":                       "volatility_risk",
	"波动":                         "volatility_risk",
	"价格波动":                       "volatility_risk",
	"no_guaranteed_return":        "no_guaranteed_return",
	"不保证收益":                      "no_guaranteed_return",
	"不保证本金":                      "no_guaranteed_return",
	"不保本":                        "no_guaranteed_return",
	"market_uncertainty":          "market_uncertainty",
	"市场不确定性":                     "market_uncertainty",
	"市场存在不确定性":                   "market_uncertainty",
	"不确定性":                       "market_uncertainty",
	"suitability_match":           "suitability_match",
	"适当性匹配":                      "suitability_match",
	"风险匹配":                       "suitability_match",
	"适当性":                        "suitability_match",
	"not_buy_sell_advice":         "not_buy_sell_advice",
	"不构成个股买卖建议":                  "not_buy_sell_advice",
	"不构成买卖建议":                    "not_buy_sell_advice",
	"not_investment_advice":       "not_investment_advice",
	"不构成投资建议":                    "not_investment_advice",
	"仅供参考":                       "not_investment_advice",
	"credit_risk":                 "credit_risk",
	"信用风险":                       "credit_risk",
	"liquidity_risk":              "liquidity_risk",
	"流动性风险":                      "liquidity_risk",
	"interest_rate_risk":          "interest_rate_risk",
	"利率风险":                       "interest_rate_risk",
	"past_performance_not_future": "past_performance_not_future",
	"过往业绩不代表未来表现":                "past_performance_not_future",
	"过往业绩不预示未来":                  "past_performance_not_future",
	"历史业绩不代表未来":                  "past_performance_not_future",
	"risk_disclosure_present":     "risk_disclosure_present",
	"无明确风险提示":                    "risk_disclosure_present",
}

// riskTagKeywords lists the keywords that mark a prediction as asserting a
// given canonical risk tag. risk_disclosure_present has no keyword list: it
// is inferred from the presence of any predicted tag, not matched directly.
var riskTagKeywords = map[string][]string{
	"volatility_risk":             {"波动风险", "波动", "回撤"},
	"no_guaranteed_return":        {"不保证收益", "不保证本金", "不保本"},
	"market_uncertainty":          {"市场不确定性", "不确定性", "市场有风险"},
	"suitability_match":           {"适当性匹配", "风险承受能力", "匹配"},
	"not_buy_sell_advice":         {"不构成个股买卖建议", "不构成买卖建议"},
	"not_investment_advice":       {"不构成投资建议", "仅供参考"},
	"credit_risk":                 {"信用风险", "违约风险"},
	"liquidity_risk":              {"流动性风险", "变现"},
	"interest_rate_risk":          {"利率风险", "利率上升"},
	"past_performance_not_future": {"过往业绩不代表未来", "历史业绩不代表未来", "过往业绩不预示未来"},
}

// riskLevelAliases maps a predicted free-text or snapshot risk level to the
// canonical {low, medium, high} scale.
var riskLevelAliases = map[string]string{
	"低":    "low", "低风险": "low", "low": "low", "conservative": "low",
	"中":    "medium", "中风险": "medium", "medium": "medium", "moderate": "medium",
	"高":    "high", "高风险": "high", "high": "high", "aggressive": "high",
}

// horizonAliases maps a predicted horizon label to {short, medium, long}.
var horizonAliases = map[string]string{
	"短期": "short", "short": "short", "short-term": "short",
	"中期": "medium", "medium": "medium", "medium-term": "medium",
	"长期": "long", "long": "long", "long-term": "long",
}

// liquidityAliases maps a predicted liquidity-need label to {low, medium, high}.
var liquidityAliases = map[string]string{
	"低": "low", "low": "low",
	"中": "medium", "medium": "medium",
	"高": "high", "high": "high",
}

// rubricKeywords lists the keywords that mark a rubric item as explained.
// An item absent from this table falls back to itself as its own keyword
// (RubricHits), so this only needs entries where a single literal match
// would be too narrow.
var rubricKeywords = map[string][]string{
	"信息依据":   {"依据", "数据", "指标", "财报", "根据"},
	"风险收益平衡": {"风险", "收益", "回撤", "平衡"},
	"与画像匹配":  {"风险偏好", "稳健", "保守", "进取", "约束", "您的"},
	"方案比较维度": {"对比", "比较", "优劣", "方案", "维度"},
	"可执行步骤":  {"步骤", "建议", "先", "然后", "1.", "2."},
	"边界声明":   {"不构成", "仅供参考", "投资有风险", "不保证收益"},
}
