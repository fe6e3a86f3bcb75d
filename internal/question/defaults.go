package question

// Defaults returns the built-in question set used when no questions file is given.
func Defaults() []Question {
	return []Question{
		{
			Prompt:      "一个篮子里有15个苹果。如果小明拿走了3个，然后小红又放入了比现在篮子里苹果数多一半的苹果，最后篮子里有多少个苹果？",
			GroundTruth: "30",
			Rationale:   "多步算术题，容易在'比现在多一半'的语义上出错。",
		},
		{
			Prompt:      "如果三只猫三天能捉三只老鼠，那么九只猫九天能捉多少只老鼠？",
			GroundTruth: "27",
			Rationale:   "比例推理题，考察单位速率是否被正确抽象。",
		},
		{
			Prompt:      "我前面有两个人，后面有两个人，我们这一排一共有多少人？",
			GroundTruth: "5",
			Rationale:   "空间关系题，Zero-Shot常把答案误判为4。",
		},
	}
}
